package domain

import "time"

// CustodyStatus records which party currently holds a device.
type CustodyStatus string

const (
	CustodyWithCustomer   CustodyStatus = "with_customer"
	CustodyInService      CustodyStatus = "in_service"
	CustodyAwaitingPickup CustodyStatus = "awaiting_pickup"
	CustodyDelivered      CustodyStatus = "delivered"
)

// Device is a customer-owned piece of equipment serviced through tickets.
type Device struct {
	EquipmentID        int64
	CustomerID         int64
	DeviceTypeID       int64
	BrandModel         *string
	SerialNumber       *string
	FirstServiceDate   *time.Time
	LastServiceDate    *time.Time
	Notes              *string
	CustodyStatus      CustodyStatus
	CustodyChangedDate time.Time
}

// ValidCustodyStatus reports whether s is a member of the stored enum.
func ValidCustodyStatus(s CustodyStatus) bool {
	switch s {
	case CustodyWithCustomer, CustodyInService, CustodyAwaitingPickup, CustodyDelivered:
		return true
	}
	return false
}
