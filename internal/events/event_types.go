package events

import (
	"time"

	"github.com/orca-works/orca-crm/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCustomerCreated      EventType = "customer_created"
	EventTicketCreated        EventType = "ticket_created"
	EventTicketStatusChanged  EventType = "ticket_status_changed"
	EventTaskCompleted        EventType = "task_completed"
	EventDeviceCustodyChanged EventType = "device_custody_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CustomerCreatedPayload payload.
type CustomerCreatedPayload struct {
	CustomerID int64                 `json:"customer_id"`
	Email      string                `json:"email"`
	Status     domain.CustomerStatus `json:"status"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID     int64                 `json:"ticket_id"`
	TicketNumber string                `json:"ticket_number"`
	CustomerID   int64                 `json:"customer_id"`
	Priority     domain.TicketPriority `json:"priority"`
	Subject      string                `json:"subject"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID     int64               `json:"ticket_id"`
	TicketNumber string              `json:"ticket_number"`
	OldStatus    domain.TicketStatus `json:"old_status"`
	NewStatus    domain.TicketStatus `json:"new_status"`
}

// TaskCompletedPayload payload.
type TaskCompletedPayload struct {
	TaskID      int64     `json:"task_id"`
	TicketID    int64     `json:"ticket_id"`
	Minutes     int       `json:"minutes"`
	CompletedAt time.Time `json:"completed_at"`
}

// DeviceCustodyChangedPayload payload.
type DeviceCustodyChangedPayload struct {
	EquipmentID int64                `json:"equipment_id"`
	CustomerID  int64                `json:"customer_id"`
	OldStatus   domain.CustodyStatus `json:"old_status"`
	NewStatus   domain.CustodyStatus `json:"new_status"`
}
