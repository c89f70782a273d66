package domain

import "time"

// CustomerStatus represents where a customer sits in the sales lifecycle.
type CustomerStatus string

const (
	CustomerStatusLead     CustomerStatus = "lead"
	CustomerStatusCurrent  CustomerStatus = "current"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer is the aggregate root for the CRM. Tickets and devices hang
// off a customer; tickets are removed with it via the cascade FK.
type Customer struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	Unit        *string
	Street      *string
	City        *string
	PostalCode  *string
	PhoneNumber *string
	Status      CustomerStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TicketCounts is the per-customer breakdown of tickets by status bucket.
// It is derived at read time, never stored; a customer with no tickets
// reports zeros across the board. Open tickets count toward Total only.
type TicketCounts struct {
	Total      int64
	Pending    int64
	Waiting    int64
	InProgress int64
	Closed     int64
	Ready      int64
}

// ValidCustomerStatus reports whether s is a member of the stored enum.
func ValidCustomerStatus(s CustomerStatus) bool {
	switch s {
	case CustomerStatusLead, CustomerStatusCurrent, CustomerStatusInactive:
		return true
	}
	return false
}
