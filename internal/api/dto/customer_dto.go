package dto

import (
	"time"

	"github.com/orca-works/orca-crm/internal/domain"
)

// CreateCustomerRequest payload.
type CreateCustomerRequest struct {
	FirstName   string                `json:"first_name" validate:"required"`
	LastName    string                `json:"last_name" validate:"required"`
	Email       string                `json:"email" validate:"required,email"`
	Unit        *string               `json:"unit"`
	Street      *string               `json:"street"`
	City        *string               `json:"city"`
	PostalCode  *string               `json:"postal_code"`
	PhoneNumber *string               `json:"phone_number"`
	Status      domain.CustomerStatus `json:"status"`
}

// UpdateCustomerRequest carries partial updates; omitted fields are left
// unchanged.
type UpdateCustomerRequest struct {
	FirstName   *string                `json:"first_name"`
	LastName    *string                `json:"last_name"`
	Email       *string                `json:"email" validate:"omitempty,email"`
	PhoneNumber *string                `json:"phone_number"`
	Status      *domain.CustomerStatus `json:"status"`
	Unit        *string                `json:"unit"`
	Street      *string                `json:"street"`
	City        *string                `json:"city"`
	PostalCode  *string                `json:"postal_code"`
}

// CustomerResponse is the plain customer rendering.
type CustomerResponse struct {
	ID          int64                 `json:"id"`
	FirstName   string                `json:"first_name"`
	LastName    string                `json:"last_name"`
	Email       string                `json:"email"`
	Unit        *string               `json:"unit"`
	Street      *string               `json:"street"`
	City        *string               `json:"city"`
	PostalCode  *string               `json:"postal_code"`
	PhoneNumber *string               `json:"phone_number"`
	Status      domain.CustomerStatus `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// TicketInfo is the per-status breakdown rendered on the customer list.
type TicketInfo struct {
	Pending    int64 `json:"pending"`
	Waiting    int64 `json:"waiting"`
	InProgress int64 `json:"in_progress"`
	Closed     int64 `json:"closed"`
	Ready      int64 `json:"ready"`
}

// CustomerListItem is a customer plus its live ticket breakdown.
type CustomerListItem struct {
	CustomerResponse
	TotalTickets int64      `json:"total_tickets"`
	TicketInfo   TicketInfo `json:"ticket_info"`
}

// CustomerDetailResponse is a customer plus its tickets.
type CustomerDetailResponse struct {
	CustomerResponse
	Tickets []TicketSummaryResponse `json:"tickets"`
}

// NewCustomerResponse maps a domain customer.
func NewCustomerResponse(customer domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          customer.ID,
		FirstName:   customer.FirstName,
		LastName:    customer.LastName,
		Email:       customer.Email,
		Unit:        customer.Unit,
		Street:      customer.Street,
		City:        customer.City,
		PostalCode:  customer.PostalCode,
		PhoneNumber: customer.PhoneNumber,
		Status:      customer.Status,
		CreatedAt:   customer.CreatedAt,
		UpdatedAt:   customer.UpdatedAt,
	}
}

// NewCustomerListItem maps a customer and its ticket counts.
func NewCustomerListItem(customer domain.Customer, counts domain.TicketCounts) CustomerListItem {
	return CustomerListItem{
		CustomerResponse: NewCustomerResponse(customer),
		TotalTickets:     counts.Total,
		TicketInfo: TicketInfo{
			Pending:    counts.Pending,
			Waiting:    counts.Waiting,
			InProgress: counts.InProgress,
			Closed:     counts.Closed,
			Ready:      counts.Ready,
		},
	}
}
