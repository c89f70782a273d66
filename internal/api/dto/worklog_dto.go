package dto

import (
	"time"

	"github.com/orca-works/orca-crm/internal/domain"
)

// CreateWorklogRequest payload.
type CreateWorklogRequest struct {
	Description string  `json:"description" validate:"required"`
	Hours       float64 `json:"hours" validate:"gte=0"`
}

// WorklogResponse is a worklog entry rendering.
type WorklogResponse struct {
	ID          int64     `json:"id"`
	TicketID    int64     `json:"ticket_id"`
	Description string    `json:"description"`
	Hours       float64   `json:"hours"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewWorklogResponse maps a worklog entry.
func NewWorklogResponse(worklog domain.Worklog) WorklogResponse {
	return WorklogResponse{
		ID:          worklog.ID,
		TicketID:    worklog.TicketID,
		Description: worklog.Description,
		Hours:       worklog.Hours,
		CreatedAt:   worklog.CreatedAt,
		UpdatedAt:   worklog.UpdatedAt,
	}
}
