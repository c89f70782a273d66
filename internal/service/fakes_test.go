package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/orca-works/orca-crm/internal/domain"
	"github.com/orca-works/orca-crm/internal/events"
	"github.com/orca-works/orca-crm/internal/repository"
)

// fakeCustomerRepo is a map-backed CustomerRepository.
type fakeCustomerRepo struct {
	nextID    int64
	customers map[int64]domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[int64]domain.Customer{}}
}

func (f *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	f.nextID++
	customer.ID = f.nextID
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	f.customers[customer.ID] = *customer
	return nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	if _, ok := f.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.customers[customer.ID] = *customer
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &customer, nil
}

func (f *fakeCustomerRepo) List(_ context.Context) ([]domain.Customer, error) {
	result := make([]domain.Customer, 0, len(f.customers))
	for _, customer := range f.customers {
		result = append(result, customer)
	}
	return result, nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.customers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.customers, id)
	return nil
}

// fakeTicketRepo is a map-backed TicketRepository. It implements only the
// behavior the services exercise; list joins return bare summaries.
type fakeTicketRepo struct {
	nextID  int64
	tickets map[int64]domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[int64]domain.Ticket{}}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	for _, existing := range f.tickets {
		if existing.TicketNumber == ticket.TicketNumber {
			return &duplicateTicketNumberError{}
		}
	}
	f.nextID++
	ticket.ID = f.nextID
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = time.Now()
	}
	ticket.UpdatedAt = ticket.CreatedAt
	f.tickets[ticket.ID] = *ticket
	return nil
}

type duplicateTicketNumberError struct{}

func (e *duplicateTicketNumberError) Error() string { return "duplicate ticket number" }

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	for id, existing := range f.tickets {
		if existing.TicketNumber == ticket.TicketNumber {
			ticket.ID = id
			f.tickets[id] = *ticket
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (f *fakeTicketRepo) GetByNumber(_ context.Context, ticketNumber string) (*repository.TicketDetail, error) {
	for _, ticket := range f.tickets {
		if ticket.TicketNumber == ticketNumber {
			return &repository.TicketDetail{Ticket: ticket}, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) List(_ context.Context, filter repository.TicketFilter) ([]repository.TicketSummary, error) {
	status := filter.Status
	if status == "" {
		status = "!closed"
	}
	var result []repository.TicketSummary
	for _, ticket := range f.tickets {
		if status == "!closed" && ticket.Status == domain.TicketStatusClosed {
			continue
		}
		if status != "!closed" && string(ticket.Status) != status {
			continue
		}
		result = append(result, repository.TicketSummary{Ticket: ticket})
	}
	return result, nil
}

func (f *fakeTicketRepo) ListByCustomer(_ context.Context, customerID int64) ([]repository.TicketSummary, error) {
	var result []repository.TicketSummary
	for _, ticket := range f.tickets {
		if ticket.CustomerID == customerID {
			result = append(result, repository.TicketSummary{Ticket: ticket})
		}
	}
	return result, nil
}

func (f *fakeTicketRepo) CountCreatedOn(_ context.Context, day time.Time) (int64, error) {
	var count int64
	for _, ticket := range f.tickets {
		if ticket.CreatedAt.Format("20060102") == day.Format("20060102") {
			count++
		}
	}
	return count, nil
}

func (f *fakeTicketRepo) StatusCountsByCustomer(_ context.Context) ([]repository.TicketStatusCount, error) {
	counts := map[int64]map[domain.TicketStatus]int64{}
	for _, ticket := range f.tickets {
		if counts[ticket.CustomerID] == nil {
			counts[ticket.CustomerID] = map[domain.TicketStatus]int64{}
		}
		counts[ticket.CustomerID][ticket.Status]++
	}
	var result []repository.TicketStatusCount
	for customerID, byStatus := range counts {
		for status, count := range byStatus {
			result = append(result, repository.TicketStatusCount{CustomerID: customerID, Status: status, Count: count})
		}
	}
	return result, nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tickets, id)
	return nil
}

// fakeTaskRepo is a map-backed TaskRepository.
type fakeTaskRepo struct {
	nextID int64
	tasks  map[int64]domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[int64]domain.Task{}}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	f.nextID++
	task.ID = f.nextID
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &task, nil
}

func (f *fakeTaskRepo) ListByTicket(_ context.Context, ticketID int64) ([]repository.TaskWithType, error) {
	var result []repository.TaskWithType
	for _, task := range f.tasks {
		if task.TicketID == ticketID {
			result = append(result, repository.TaskWithType{Task: task})
		}
	}
	return result, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tasks, id)
	return nil
}

// fakeWorklogRepo is a slice-backed WorklogRepository.
type fakeWorklogRepo struct {
	nextID   int64
	worklogs []domain.Worklog
}

func newFakeWorklogRepo() *fakeWorklogRepo {
	return &fakeWorklogRepo{}
}

func (f *fakeWorklogRepo) Create(_ context.Context, worklog *domain.Worklog) error {
	f.nextID++
	worklog.ID = f.nextID
	worklog.CreatedAt = time.Now()
	worklog.UpdatedAt = worklog.CreatedAt
	f.worklogs = append(f.worklogs, *worklog)
	return nil
}

func (f *fakeWorklogRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.Worklog, error) {
	var result []domain.Worklog
	for _, worklog := range f.worklogs {
		if worklog.TicketID == ticketID {
			result = append(result, worklog)
		}
	}
	return result, nil
}

// fakeDeviceRepo is a map-backed DeviceRepository.
type fakeDeviceRepo struct {
	nextID  int64
	devices map[int64]domain.Device
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: map[int64]domain.Device{}}
}

func (f *fakeDeviceRepo) Create(_ context.Context, device *domain.Device) error {
	f.nextID++
	device.EquipmentID = f.nextID
	if device.CustodyChangedDate.IsZero() {
		device.CustodyChangedDate = time.Now()
	}
	f.devices[device.EquipmentID] = *device
	return nil
}

func (f *fakeDeviceRepo) Update(_ context.Context, device *domain.Device) error {
	if _, ok := f.devices[device.EquipmentID]; !ok {
		return pgx.ErrNoRows
	}
	f.devices[device.EquipmentID] = *device
	return nil
}

func (f *fakeDeviceRepo) GetByID(_ context.Context, equipmentID int64) (*domain.Device, error) {
	device, ok := f.devices[equipmentID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &device, nil
}

func (f *fakeDeviceRepo) ListByCustomer(_ context.Context, customerID int64) ([]repository.DeviceWithType, error) {
	var result []repository.DeviceWithType
	for _, device := range f.devices {
		if device.CustomerID == customerID {
			result = append(result, repository.DeviceWithType{Device: device})
		}
	}
	return result, nil
}

func (f *fakeDeviceRepo) Delete(_ context.Context, equipmentID int64) error {
	if _, ok := f.devices[equipmentID]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.devices, equipmentID)
	return nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
