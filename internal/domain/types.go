package domain

// TicketType is a lookup dictionary entry categorizing tickets.
type TicketType struct {
	ID          int64
	Name        string
	Description *string
}

// TaskType is a lookup dictionary entry categorizing tasks.
type TaskType struct {
	ID          int64
	Name        string
	Description *string
}

// DeviceType is a lookup dictionary entry categorizing devices.
type DeviceType struct {
	ID   int64
	Name string
}
