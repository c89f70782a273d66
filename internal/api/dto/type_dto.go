package dto

import "github.com/orca-works/orca-crm/internal/domain"

// TypeResponse is a lookup dictionary entry rendering.
type TypeResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// NewTicketTypeResponse maps a ticket type lookup.
func NewTicketTypeResponse(t domain.TicketType) TypeResponse {
	return TypeResponse{ID: t.ID, Name: t.Name, Description: t.Description}
}

// NewTaskTypeResponse maps a task type lookup.
func NewTaskTypeResponse(t domain.TaskType) TypeResponse {
	return TypeResponse{ID: t.ID, Name: t.Name, Description: t.Description}
}

// NewDeviceTypeResponse maps a device type lookup.
func NewDeviceTypeResponse(t domain.DeviceType) TypeResponse {
	return TypeResponse{ID: t.ID, Name: t.Name}
}
