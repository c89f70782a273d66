package domain

import "time"

// Worklog is a free-form record of hours spent against a ticket.
type Worklog struct {
	ID          int64
	TicketID    int64
	Description string
	Hours       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
