package dto

import (
	"time"

	"github.com/orca-works/orca-crm/internal/domain"
	"github.com/orca-works/orca-crm/internal/repository"
)

// CreateTicketRequest payload. The ticket number is fetched from the
// next-number endpoint and sent back on creation. Description is the
// only optional field of the contract.
type CreateTicketRequest struct {
	CustomerID   int64                 `json:"customer_id" validate:"required"`
	Subject      string                `json:"subject" validate:"required"`
	Description  *string               `json:"description"`
	Priority     domain.TicketPriority `json:"priority" validate:"required"`
	TicketNumber string                `json:"ticket_number" validate:"required"`
	TicketTypeID *int64                `json:"ticket_type_id" validate:"required"`
	DeviceID     *int64                `json:"device_id"`
	DueAt        *time.Time            `json:"due_at"`
}

// UpdateTicketRequest rewrites a ticket's mutable fields in full.
type UpdateTicketRequest struct {
	Subject      string                `json:"subject" validate:"required"`
	Status       domain.TicketStatus   `json:"status" validate:"required"`
	DueAt        *time.Time            `json:"due_at"`
	Description  *string               `json:"description"`
	TicketTypeID *int64                `json:"ticket_type_id"`
	DeviceID     *int64                `json:"device_id"`
	Priority     domain.TicketPriority `json:"priority"`
}

// CreateTicketResult mirrors the legacy creation envelope.
type CreateTicketResult struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// TicketSummaryResponse is a ticket row as the list views render it.
type TicketSummaryResponse struct {
	ID           int64                 `json:"id"`
	TicketNumber string                `json:"ticket_number"`
	CustomerID   int64                 `json:"customer_id"`
	CustomerName string                `json:"customer_name"`
	Subject      string                `json:"subject"`
	Status       domain.TicketStatus   `json:"status"`
	Priority     domain.TicketPriority `json:"priority"`
	TaskCount    int64                 `json:"task_count"`
	DueAt        *time.Time            `json:"due_at"`
	Due          *domain.DueInfo       `json:"due"`
	CreatedAt    time.Time             `json:"created_at"`
	CreatedAgo   string                `json:"created_ago"`
}

// TicketDetailResponse is a ticket with its lookups resolved.
type TicketDetailResponse struct {
	ID                 int64                 `json:"id"`
	TicketNumber       string                `json:"ticket_number"`
	CustomerID         int64                 `json:"customer_id"`
	Subject            string                `json:"subject"`
	Description        *string               `json:"description"`
	Status             domain.TicketStatus   `json:"status"`
	Priority           domain.TicketPriority `json:"priority"`
	DueAt              *time.Time            `json:"due_at"`
	Due                *domain.DueInfo       `json:"due"`
	CompletedAt        *time.Time            `json:"completed_at"`
	TicketTypeID       *int64                `json:"ticket_type_id"`
	TicketTypeName     *string               `json:"ticket_type_name"`
	DeviceID           *int64                `json:"device_id"`
	DeviceTypeID       *int64                `json:"device_type_id"`
	DeviceTypeName     *string               `json:"device_type_name"`
	DeviceBrandModel   *string               `json:"device_brand_model"`
	DeviceSerialNumber *string               `json:"device_serial_number"`
	DeviceNotes        *string               `json:"device_notes"`
	CreatedAt          time.Time             `json:"created_at"`
	CreatedAgo         string                `json:"created_ago"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// NextTicketNumberResponse carries a candidate ticket number.
type NextTicketNumberResponse struct {
	TicketNumber string `json:"ticket_number"`
}

// TicketCountResponse carries a per-day creation count.
type TicketCountResponse struct {
	Count int64 `json:"count"`
}

// NewTicketSummaryResponse maps a joined ticket row, rendering the due
// and elapsed-time texts relative to now.
func NewTicketSummaryResponse(summary repository.TicketSummary, now time.Time) TicketSummaryResponse {
	var due *domain.DueInfo
	if summary.DueAt != nil {
		due = domain.DueDays(*summary.DueAt, now)
	}
	return TicketSummaryResponse{
		ID:           summary.ID,
		TicketNumber: summary.TicketNumber,
		CustomerID:   summary.CustomerID,
		CustomerName: summary.CustomerFirstName + " " + summary.CustomerLastName,
		Subject:      summary.Subject,
		Status:       summary.Status,
		Priority:     summary.Priority,
		TaskCount:    summary.TaskCount,
		DueAt:        summary.DueAt,
		Due:          due,
		CreatedAt:    summary.CreatedAt,
		CreatedAgo:   domain.DaysSince(summary.CreatedAt, now),
	}
}

// NewTicketDetailResponse maps a joined ticket detail row.
func NewTicketDetailResponse(detail repository.TicketDetail, now time.Time) TicketDetailResponse {
	var due *domain.DueInfo
	if detail.DueAt != nil {
		due = domain.DueDays(*detail.DueAt, now)
	}
	return TicketDetailResponse{
		ID:                 detail.ID,
		TicketNumber:       detail.TicketNumber,
		CustomerID:         detail.CustomerID,
		Subject:            detail.Subject,
		Description:        detail.Description,
		Status:             detail.Status,
		Priority:           detail.Priority,
		DueAt:              detail.DueAt,
		Due:                due,
		CompletedAt:        detail.CompletedAt,
		TicketTypeID:       detail.TicketTypeID,
		TicketTypeName:     detail.TicketTypeName,
		DeviceID:           detail.DeviceID,
		DeviceTypeID:       detail.DeviceTypeID,
		DeviceTypeName:     detail.DeviceTypeName,
		DeviceBrandModel:   detail.DeviceBrandModel,
		DeviceSerialNumber: detail.DeviceSerialNumber,
		DeviceNotes:        detail.DeviceNotes,
		CreatedAt:          detail.CreatedAt,
		CreatedAgo:         domain.DaysSince(detail.CreatedAt, now),
		UpdatedAt:          detail.UpdatedAt,
	}
}
