package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orca-works/orca-crm/internal/domain"
	"github.com/orca-works/orca-crm/internal/events"
	"github.com/orca-works/orca-crm/internal/repository"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

// DeviceService coordinates customer device workflows.
type DeviceService struct {
	devices    repository.DeviceRepository
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
}

// DeviceDependencies bundles repositories for the device service.
type DeviceDependencies struct {
	DeviceRepo   repository.DeviceRepository
	CustomerRepo repository.CustomerRepository
	Dispatcher   events.Dispatcher
}

// DeviceCreateInput describes device registration payload.
type DeviceCreateInput struct {
	DeviceTypeID     int64
	BrandModel       *string
	SerialNumber     *string
	FirstServiceDate *time.Time
	LastServiceDate  *time.Time
	Notes            *string
}

// DeviceUpdateInput describes a full device update, custody included.
type DeviceUpdateInput struct {
	DeviceTypeID     int64
	BrandModel       *string
	SerialNumber     *string
	FirstServiceDate *time.Time
	LastServiceDate  *time.Time
	Notes            *string
	CustodyStatus    domain.CustodyStatus
}

// NewDeviceService constructs the service.
func NewDeviceService(deps DeviceDependencies) *DeviceService {
	return &DeviceService{
		devices:    deps.DeviceRepo,
		customers:  deps.CustomerRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListDevices returns a customer's devices joined with type names.
func (s *DeviceService) ListDevices(ctx context.Context, customerID int64) ([]repository.DeviceWithType, error) {
	return s.devices.ListByCustomer(ctx, customerID)
}

// CreateDevice registers a device against a customer. Custody starts
// with the customer.
func (s *DeviceService) CreateDevice(ctx context.Context, customerID int64, input DeviceCreateInput) (*domain.Device, error) {
	if input.DeviceTypeID <= 0 {
		return nil, apperrors.NewValidationError("device_type_id required", nil)
	}
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("customer", map[string]any{"id": customerID})
		}
		return nil, err
	}

	device := &domain.Device{
		CustomerID:       customerID,
		DeviceTypeID:     input.DeviceTypeID,
		BrandModel:       input.BrandModel,
		SerialNumber:     input.SerialNumber,
		FirstServiceDate: input.FirstServiceDate,
		LastServiceDate:  input.LastServiceDate,
		Notes:            input.Notes,
		CustodyStatus:    domain.CustodyWithCustomer,
	}
	if err := s.devices.Create(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// UpdateDevice rewrites a device row. A custody change stamps the
// custody_changed_date and emits an event.
func (s *DeviceService) UpdateDevice(ctx context.Context, equipmentID int64, input DeviceUpdateInput) (*domain.Device, error) {
	if input.CustodyStatus != "" && !domain.ValidCustodyStatus(input.CustodyStatus) {
		return nil, apperrors.NewValidationError("invalid custody_status", map[string]any{"custody_status": input.CustodyStatus})
	}

	device, err := s.devices.GetByID(ctx, equipmentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("device", map[string]any{"equipment_id": equipmentID})
		}
		return nil, err
	}

	oldCustody := device.CustodyStatus
	if input.DeviceTypeID > 0 {
		device.DeviceTypeID = input.DeviceTypeID
	}
	device.BrandModel = input.BrandModel
	device.SerialNumber = input.SerialNumber
	device.FirstServiceDate = input.FirstServiceDate
	device.LastServiceDate = input.LastServiceDate
	device.Notes = input.Notes
	if input.CustodyStatus != "" && input.CustodyStatus != oldCustody {
		device.CustodyStatus = input.CustodyStatus
		device.CustodyChangedDate = time.Now()
	}

	if err := s.devices.Update(ctx, device); err != nil {
		return nil, err
	}

	if device.CustodyStatus != oldCustody {
		s.publishEvent(ctx, events.Event{
			Type: events.EventDeviceCustodyChanged,
			Payload: events.DeviceCustodyChangedPayload{
				EquipmentID: device.EquipmentID,
				CustomerID:  device.CustomerID,
				OldStatus:   oldCustody,
				NewStatus:   device.CustodyStatus,
			},
		})
	}
	return device, nil
}

// DeleteDevice removes a device by equipment id.
func (s *DeviceService) DeleteDevice(ctx context.Context, equipmentID int64) error {
	if err := s.devices.Delete(ctx, equipmentID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("device", map[string]any{"equipment_id": equipmentID})
		}
		return err
	}
	return nil
}

func (s *DeviceService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
