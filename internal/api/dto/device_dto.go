package dto

import (
	"time"

	"github.com/orca-works/orca-crm/internal/domain"
	"github.com/orca-works/orca-crm/internal/repository"
)

// CreateDeviceRequest payload. Custody is not accepted on creation: a
// newly registered device always starts with the customer.
type CreateDeviceRequest struct {
	DeviceTypeID     int64      `json:"device_type_id" validate:"required"`
	BrandModel       *string    `json:"brand_model"`
	SerialNumber     *string    `json:"serial_number"`
	FirstServiceDate *time.Time `json:"first_service_date"`
	LastServiceDate  *time.Time `json:"last_service_date"`
	Notes            *string    `json:"notes"`
}

// UpdateDeviceRequest payload.
type UpdateDeviceRequest struct {
	DeviceTypeID     int64                `json:"device_type_id"`
	BrandModel       *string              `json:"brand_model"`
	SerialNumber     *string              `json:"serial_number"`
	FirstServiceDate *time.Time           `json:"first_service_date"`
	LastServiceDate  *time.Time           `json:"last_service_date"`
	Notes            *string              `json:"notes"`
	CustodyStatus    domain.CustodyStatus `json:"custody_status"`
}

// DeviceResponse is a device row with its type name.
type DeviceResponse struct {
	EquipmentID        int64                `json:"equipment_id"`
	CustomerID         int64                `json:"customer_id"`
	DeviceTypeID       int64                `json:"device_type_id"`
	DeviceTypeName     *string              `json:"device_type_name"`
	BrandModel         *string              `json:"brand_model"`
	SerialNumber       *string              `json:"serial_number"`
	FirstServiceDate   *time.Time           `json:"first_service_date"`
	LastServiceDate    *time.Time           `json:"last_service_date"`
	Notes              *string              `json:"notes"`
	CustodyStatus      domain.CustodyStatus `json:"custody_status"`
	CustodyChangedDate time.Time            `json:"custody_changed_date"`
}

// NewDeviceResponse maps a joined device row.
func NewDeviceResponse(device repository.DeviceWithType) DeviceResponse {
	return DeviceResponse{
		EquipmentID:        device.EquipmentID,
		CustomerID:         device.CustomerID,
		DeviceTypeID:       device.DeviceTypeID,
		DeviceTypeName:     device.DeviceTypeName,
		BrandModel:         device.BrandModel,
		SerialNumber:       device.SerialNumber,
		FirstServiceDate:   device.FirstServiceDate,
		LastServiceDate:    device.LastServiceDate,
		Notes:              device.Notes,
		CustodyStatus:      device.CustodyStatus,
		CustodyChangedDate: device.CustodyChangedDate,
	}
}

// NewPlainDeviceResponse maps a bare device without a type name.
func NewPlainDeviceResponse(device domain.Device) DeviceResponse {
	return NewDeviceResponse(repository.DeviceWithType{Device: device})
}
