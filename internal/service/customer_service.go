package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orca-works/orca-crm/internal/domain"
	"github.com/orca-works/orca-crm/internal/events"
	"github.com/orca-works/orca-crm/internal/repository"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

// CustomerService coordinates customer workflows and the derived ticket
// aggregation.
type CustomerService struct {
	customers  repository.CustomerRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// CustomerDependencies bundles repositories for the customer service.
type CustomerDependencies struct {
	CustomerRepo repository.CustomerRepository
	TicketRepo   repository.TicketRepository
	Dispatcher   events.Dispatcher
}

// CustomerWithCounts pairs a customer with its live ticket breakdown.
type CustomerWithCounts struct {
	domain.Customer
	Counts domain.TicketCounts
}

// CustomerDetail is a customer plus its tickets, as the detail page
// renders them.
type CustomerDetail struct {
	Customer domain.Customer
	Tickets  []repository.TicketSummary
}

// CustomerCreateInput describes customer creation payload.
type CustomerCreateInput struct {
	FirstName   string
	LastName    string
	Email       string
	Unit        *string
	Street      *string
	City        *string
	PostalCode  *string
	PhoneNumber *string
	Status      domain.CustomerStatus
}

// CustomerUpdateInput carries partial updates; nil fields keep their
// current value.
type CustomerUpdateInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	Status      *domain.CustomerStatus
	Unit        *string
	Street      *string
	City        *string
	PostalCode  *string
}

// NewCustomerService constructs the service.
func NewCustomerService(deps CustomerDependencies) *CustomerService {
	return &CustomerService{
		customers:  deps.CustomerRepo,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListWithTicketCounts returns every customer with its ticket breakdown
// computed from live rows. Customers without tickets report zeros; the
// view is never cached or persisted.
func (s *CustomerService) ListWithTicketCounts(ctx context.Context) ([]CustomerWithCounts, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.tickets.StatusCountsByCustomer(ctx)
	if err != nil {
		return nil, err
	}

	counts := FoldTicketCounts(statusCounts)
	result := make([]CustomerWithCounts, 0, len(customers))
	for _, customer := range customers {
		result = append(result, CustomerWithCounts{
			Customer: customer,
			Counts:   counts[customer.ID],
		})
	}
	return result, nil
}

// FoldTicketCounts groups per-status ticket counts into per-customer
// buckets. Every ticket lands in exactly one bucket except open tickets,
// which count toward the total only.
func FoldTicketCounts(rows []repository.TicketStatusCount) map[int64]domain.TicketCounts {
	counts := make(map[int64]domain.TicketCounts, len(rows))
	for _, row := range rows {
		entry := counts[row.CustomerID]
		entry.Total += row.Count
		switch row.Status {
		case domain.TicketStatusPending:
			entry.Pending += row.Count
		case domain.TicketStatusWaiting:
			entry.Waiting += row.Count
		case domain.TicketStatusInProgress:
			entry.InProgress += row.Count
		case domain.TicketStatusClosed:
			entry.Closed += row.Count
		case domain.TicketStatusReady:
			entry.Ready += row.Count
		}
		counts[row.CustomerID] = entry
	}
	return counts
}

// CreateCustomer validates input and inserts a new customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, input CustomerCreateInput) (*domain.Customer, error) {
	if input.Status == "" {
		input.Status = domain.CustomerStatusLead
	}
	if !domain.ValidCustomerStatus(input.Status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": input.Status})
	}

	customer := &domain.Customer{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       strings.TrimSpace(input.Email),
		Unit:        input.Unit,
		Street:      input.Street,
		City:        input.City,
		PostalCode:  input.PostalCode,
		PhoneNumber: input.PhoneNumber,
		Status:      input.Status,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventCustomerCreated,
		Payload: events.CustomerCreatedPayload{
			CustomerID: customer.ID,
			Email:      customer.Email,
			Status:     customer.Status,
		},
	})
	return customer, nil
}

// GetCustomer fetches a customer and its tickets.
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*CustomerDetail, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("customer", map[string]any{"id": id})
		}
		return nil, err
	}
	tickets, err := s.tickets.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CustomerDetail{Customer: *customer, Tickets: tickets}, nil
}

// UpdateCustomer merges the provided fields onto the stored row.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, input CustomerUpdateInput) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("customer", map[string]any{"id": id})
		}
		return nil, err
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = *input.LastName
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.PhoneNumber != nil {
		customer.PhoneNumber = input.PhoneNumber
	}
	if input.Status != nil {
		if !domain.ValidCustomerStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		customer.Status = *input.Status
	}
	if input.Unit != nil {
		customer.Unit = input.Unit
	}
	if input.Street != nil {
		customer.Street = input.Street
	}
	if input.City != nil {
		customer.City = input.City
	}
	if input.PostalCode != nil {
		customer.PostalCode = input.PostalCode
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer; its tickets cascade in the store.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("customer", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

func (s *CustomerService) publishEvent(ctx context.Context, event events.Event) {
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
