package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orca-works/orca-crm/internal/domain"
	"github.com/orca-works/orca-crm/internal/events"
	"github.com/orca-works/orca-crm/internal/repository"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

func newCustomerFixture(t *testing.T) (*CustomerService, *fakeCustomerRepo, *fakeTicketRepo, *recordingDispatcher) {
	t.Helper()
	customers := newFakeCustomerRepo()
	tickets := newFakeTicketRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewCustomerService(CustomerDependencies{
		CustomerRepo: customers,
		TicketRepo:   tickets,
		Dispatcher:   dispatcher,
	})
	return svc, customers, tickets, dispatcher
}

func TestFoldTicketCountsEmpty(t *testing.T) {
	counts := FoldTicketCounts(nil)
	assert.Empty(t, counts)
	assert.Equal(t, domain.TicketCounts{}, counts[7])
}

func TestFoldTicketCountsBuckets(t *testing.T) {
	rows := []repository.TicketStatusCount{
		{CustomerID: 1, Status: domain.TicketStatusPending, Count: 1},
		{CustomerID: 1, Status: domain.TicketStatusClosed, Count: 2},
	}

	counts := FoldTicketCounts(rows)
	assert.Equal(t, domain.TicketCounts{Total: 3, Pending: 1, Closed: 2}, counts[1])
}

func TestFoldTicketCountsOpenCountsTowardTotalOnly(t *testing.T) {
	rows := []repository.TicketStatusCount{
		{CustomerID: 1, Status: domain.TicketStatusOpen, Count: 4},
		{CustomerID: 1, Status: domain.TicketStatusReady, Count: 1},
	}

	counts := FoldTicketCounts(rows)
	entry := counts[1]
	assert.Equal(t, int64(5), entry.Total)
	assert.Equal(t, int64(1), entry.Ready)
	assert.Zero(t, entry.Pending)
	assert.Zero(t, entry.Waiting)
	assert.Zero(t, entry.InProgress)
	assert.Zero(t, entry.Closed)
}

func TestFoldTicketCountsMultipleCustomers(t *testing.T) {
	rows := []repository.TicketStatusCount{
		{CustomerID: 1, Status: domain.TicketStatusWaiting, Count: 2},
		{CustomerID: 2, Status: domain.TicketStatusInProgress, Count: 3},
	}

	counts := FoldTicketCounts(rows)
	assert.Equal(t, domain.TicketCounts{Total: 2, Waiting: 2}, counts[1])
	assert.Equal(t, domain.TicketCounts{Total: 3, InProgress: 3}, counts[2])
}

func TestListWithTicketCountsZeroesForTicketlessCustomers(t *testing.T) {
	svc, customers, tickets, _ := newCustomerFixture(t)

	withTickets := domain.Customer{FirstName: "Ana", LastName: "Ward", Email: "ana@example.com", Status: domain.CustomerStatusCurrent}
	require.NoError(t, customers.Create(context.Background(), &withTickets))
	without := domain.Customer{FirstName: "Ben", LastName: "Ochoa", Email: "ben@example.com", Status: domain.CustomerStatusLead}
	require.NoError(t, customers.Create(context.Background(), &without))

	require.NoError(t, tickets.Create(context.Background(), &domain.Ticket{
		CustomerID:   withTickets.ID,
		Subject:      "install",
		TicketNumber: "OIT_20250310_001",
		Status:       domain.TicketStatusPending,
		Priority:     domain.TicketPriorityNormal,
	}))

	result, err := svc.ListWithTicketCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	byID := map[int64]CustomerWithCounts{}
	for _, entry := range result {
		byID[entry.Customer.ID] = entry
	}
	assert.Equal(t, domain.TicketCounts{Total: 1, Pending: 1}, byID[withTickets.ID].Counts)
	assert.Equal(t, domain.TicketCounts{}, byID[without.ID].Counts)
}

func TestCreateCustomerDefaultsToLead(t *testing.T) {
	svc, _, _, dispatcher := newCustomerFixture(t)

	customer, err := svc.CreateCustomer(context.Background(), CustomerCreateInput{
		FirstName: "Ana",
		LastName:  "Ward",
		Email:     " ana@example.com ",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerStatusLead, customer.Status)
	assert.Equal(t, "ana@example.com", customer.Email)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventCustomerCreated, published[0].Type)
}

func TestCreateCustomerRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := newCustomerFixture(t)

	_, err := svc.CreateCustomer(context.Background(), CustomerCreateInput{
		FirstName: "Ana",
		LastName:  "Ward",
		Email:     "ana@example.com",
		Status:    domain.CustomerStatus("vip"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateCustomerMergesFields(t *testing.T) {
	svc, customers, _, _ := newCustomerFixture(t)
	customer := domain.Customer{FirstName: "Ana", LastName: "Ward", Email: "ana@example.com", Status: domain.CustomerStatusLead}
	require.NoError(t, customers.Create(context.Background(), &customer))

	phone := "555-0100"
	status := domain.CustomerStatusCurrent
	updated, err := svc.UpdateCustomer(context.Background(), customer.ID, CustomerUpdateInput{
		PhoneNumber: &phone,
		Status:      &status,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", updated.FirstName)
	assert.Equal(t, domain.CustomerStatusCurrent, updated.Status)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, phone, *updated.PhoneNumber)
}

func TestGetCustomerNotFound(t *testing.T) {
	svc, _, _, _ := newCustomerFixture(t)

	_, err := svc.GetCustomer(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
