package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orca-works/orca-crm/internal/domain"
	"github.com/orca-works/orca-crm/internal/events"
	"github.com/orca-works/orca-crm/internal/repository"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

// ticketNumberPrefix is the shop identifier baked into every ticket number.
const ticketNumberPrefix = "OIT"

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	CustomerRepo repository.CustomerRepository
	Dispatcher   events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	CustomerID   int64
	Subject      string
	Description  *string
	Priority     domain.TicketPriority
	TicketNumber string
	TicketTypeID *int64
	DeviceID     *int64
	DueAt        *time.Time
}

// TicketUpdateInput describes the mutable fields of a ticket. The ticket
// number addresses the row and never changes.
type TicketUpdateInput struct {
	Subject      string
	Status       domain.TicketStatus
	DueAt        *time.Time
	Description  *string
	TicketTypeID *int64
	DeviceID     *int64
	Priority     domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		customers:  deps.CustomerRepo,
		dispatcher: deps.Dispatcher,
	}
}

// NextTicketNumber computes the candidate number for a ticket created on
// the given day: OIT_YYYYMMDD_NNN where NNN is the count of tickets
// already created that day plus one. The read is idempotent; uniqueness
// is ultimately enforced by the constraint on ticket_number, so a
// concurrent creation surfaces as a conflict on insert rather than a
// silent overwrite.
func (s *TicketService) NextTicketNumber(ctx context.Context, day time.Time) (string, error) {
	count, err := s.tickets.CountCreatedOn(ctx, day)
	if err != nil {
		return "", err
	}
	return FormatTicketNumber(day, count+1), nil
}

// FormatTicketNumber renders a ticket number from a day and sequence.
func FormatTicketNumber(day time.Time, seq int64) string {
	return fmt.Sprintf("%s_%s_%03d", ticketNumberPrefix, day.Format("20060102"), seq)
}

// CountCreatedOn exposes the per-day creation count for the legacy
// count endpoint.
func (s *TicketService) CountCreatedOn(ctx context.Context, day time.Time) (int64, error) {
	return s.tickets.CountCreatedOn(ctx, day)
}

// CreateTicket validates input and inserts a new open ticket. Priority
// and ticket type are part of the creation contract, not defaults.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if input.Priority == "" {
		return nil, apperrors.NewValidationError("priority required", nil)
	}
	if !domain.ValidTicketPriority(input.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}
	if input.TicketTypeID == nil || *input.TicketTypeID <= 0 {
		return nil, apperrors.NewValidationError("ticket_type_id required", nil)
	}
	if strings.TrimSpace(input.TicketNumber) == "" {
		return nil, apperrors.NewValidationError("ticket_number required", nil)
	}

	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("customer", map[string]any{"customer_id": input.CustomerID})
		}
		return nil, err
	}

	ticket := &domain.Ticket{
		CustomerID:   input.CustomerID,
		Subject:      strings.TrimSpace(input.Subject),
		Description:  input.Description,
		Priority:     input.Priority,
		TicketNumber: input.TicketNumber,
		Status:       domain.TicketStatusOpen,
		DueAt:        input.DueAt,
		DeviceID:     input.DeviceID,
		TicketTypeID: input.TicketTypeID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID:     ticket.ID,
			TicketNumber: ticket.TicketNumber,
			CustomerID:   ticket.CustomerID,
			Priority:     ticket.Priority,
			Subject:      ticket.Subject,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets joined with customer names and task counts.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]repository.TicketSummary, error) {
	if filter.Status != "" && filter.Status != "!closed" && !domain.ValidTicketStatus(domain.TicketStatus(filter.Status)) {
		return nil, apperrors.NewValidationError("invalid status filter", map[string]any{"status": filter.Status})
	}
	return s.tickets.List(ctx, filter)
}

// GetByNumber fetches a ticket with its type and device lookups.
func (s *TicketService) GetByNumber(ctx context.Context, ticketNumber string) (*repository.TicketDetail, error) {
	detail, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
		}
		return nil, err
	}
	return detail, nil
}

// UpdateByNumber rewrites a ticket's mutable fields and returns the
// freshly read row. The update and the re-read are separate statements
// with no atomicity guarantee; an interleaved write may be observed.
func (s *TicketService) UpdateByNumber(ctx context.Context, ticketNumber string, input TicketUpdateInput) (*repository.TicketDetail, error) {
	if !domain.ValidTicketStatus(input.Status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": input.Status})
	}
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityNormal
	}
	if !domain.ValidTicketPriority(input.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}

	existing, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
		}
		return nil, err
	}

	ticket := existing.Ticket
	oldStatus := ticket.Status
	ticket.Subject = strings.TrimSpace(input.Subject)
	ticket.Status = input.Status
	ticket.DueAt = input.DueAt
	ticket.Description = input.Description
	ticket.TicketTypeID = input.TicketTypeID
	ticket.DeviceID = input.DeviceID
	ticket.Priority = input.Priority
	if input.Status == domain.TicketStatusClosed && oldStatus != domain.TicketStatusClosed {
		now := time.Now()
		ticket.CompletedAt = &now
	}

	if err := s.tickets.Update(ctx, &ticket); err != nil {
		return nil, err
	}
	if oldStatus != ticket.Status {
		s.publishEvent(ctx, events.Event{
			Type: events.EventTicketStatusChanged,
			Payload: events.TicketStatusChangedPayload{
				TicketID:     ticket.ID,
				TicketNumber: ticket.TicketNumber,
				OldStatus:    oldStatus,
				NewStatus:    ticket.Status,
			},
		})
	}
	return s.tickets.GetByNumber(ctx, ticketNumber)
}

// DeleteTicket removes a ticket; tasks and worklogs go with it via the
// cascade FK.
func (s *TicketService) DeleteTicket(ctx context.Context, id int64) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
