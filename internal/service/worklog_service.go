package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/orca-works/orca-crm/internal/domain"
	"github.com/orca-works/orca-crm/internal/repository"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

// WorklogService records free-form work entries against a ticket.
type WorklogService struct {
	worklogs repository.WorklogRepository
	tickets  repository.TicketRepository
}

// WorklogDependencies bundles repositories for the worklog service.
type WorklogDependencies struct {
	WorklogRepo repository.WorklogRepository
	TicketRepo  repository.TicketRepository
}

// WorklogCreateInput describes a worklog entry payload.
type WorklogCreateInput struct {
	Description string
	Hours       float64
}

// NewWorklogService constructs the service.
func NewWorklogService(deps WorklogDependencies) *WorklogService {
	return &WorklogService{
		worklogs: deps.WorklogRepo,
		tickets:  deps.TicketRepo,
	}
}

// ListWorklogs returns a ticket's worklog entries, oldest first.
func (s *WorklogService) ListWorklogs(ctx context.Context, ticketID int64) ([]domain.Worklog, error) {
	return s.worklogs.ListByTicket(ctx, ticketID)
}

// CreateWorklog appends a work entry to a ticket.
func (s *WorklogService) CreateWorklog(ctx context.Context, ticketID int64, input WorklogCreateInput) (*domain.Worklog, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if input.Hours < 0 {
		return nil, apperrors.NewValidationError("hours must not be negative", map[string]any{"hours": input.Hours})
	}

	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}

	worklog := &domain.Worklog{
		TicketID:    ticketID,
		Description: input.Description,
		Hours:       input.Hours,
	}
	if err := s.worklogs.Create(ctx, worklog); err != nil {
		return nil, err
	}
	return worklog, nil
}
