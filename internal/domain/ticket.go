package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The stored enum
// carries the full working set used by the board views; there is no
// separate derived status.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusWaiting    TicketStatus = "waiting"
	TicketStatusReady      TicketStatus = "ready"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityHigh   TicketPriority = "high"
)

// Ticket is a trackable unit of work tied to a customer. TicketNumber is
// unique and immutable once assigned.
type Ticket struct {
	ID           int64
	CustomerID   int64
	Subject      string
	Description  *string
	Priority     TicketPriority
	TicketNumber string
	Status       TicketStatus
	DueAt        *time.Time
	DeviceID     *int64
	TicketTypeID *int64
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidTicketStatus reports whether s is a member of the stored enum.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusPending, TicketStatusInProgress,
		TicketStatusWaiting, TicketStatusReady, TicketStatusClosed:
		return true
	}
	return false
}

// ValidTicketPriority reports whether p is a member of the stored enum.
func ValidTicketPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityNormal, TicketPriorityHigh:
		return true
	}
	return false
}
