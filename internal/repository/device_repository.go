package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orca-works/orca-crm/internal/domain"
)

// DeviceWithType is a device row joined with its device type name.
type DeviceWithType struct {
	domain.Device
	DeviceTypeName *string
}

// DeviceRepository encapsulates customer device persistence.
type DeviceRepository interface {
	Create(ctx context.Context, device *domain.Device) error
	Update(ctx context.Context, device *domain.Device) error
	GetByID(ctx context.Context, equipmentID int64) (*domain.Device, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]DeviceWithType, error)
	Delete(ctx context.Context, equipmentID int64) error
}

type deviceRepository struct {
	pool *pgxpool.Pool
}

// NewDeviceRepository instantiates repository.
func NewDeviceRepository(pool *pgxpool.Pool) DeviceRepository {
	return &deviceRepository{pool: pool}
}

func (r *deviceRepository) Create(ctx context.Context, device *domain.Device) error {
	const query = `
        INSERT INTO customer_device (customer_id, device_type_id, brand_model, serial_number, first_service_date, last_service_date, notes, custody_status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING equipment_id, custody_changed_date`
	return r.pool.QueryRow(ctx, query,
		device.CustomerID,
		device.DeviceTypeID,
		device.BrandModel,
		device.SerialNumber,
		device.FirstServiceDate,
		device.LastServiceDate,
		device.Notes,
		device.CustodyStatus,
	).Scan(&device.EquipmentID, &device.CustodyChangedDate)
}

func (r *deviceRepository) Update(ctx context.Context, device *domain.Device) error {
	const query = `
        UPDATE customer_device SET device_type_id=$1, brand_model=$2, serial_number=$3,
            first_service_date=$4, last_service_date=$5, notes=$6, custody_status=$7, custody_changed_date=$8
        WHERE equipment_id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		device.DeviceTypeID,
		device.BrandModel,
		device.SerialNumber,
		device.FirstServiceDate,
		device.LastServiceDate,
		device.Notes,
		device.CustodyStatus,
		device.CustodyChangedDate,
		device.EquipmentID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *deviceRepository) GetByID(ctx context.Context, equipmentID int64) (*domain.Device, error) {
	const query = `
        SELECT equipment_id, customer_id, device_type_id, brand_model, serial_number,
               first_service_date, last_service_date, notes, custody_status, custody_changed_date
        FROM customer_device WHERE equipment_id=$1`
	var device domain.Device
	if err := r.pool.QueryRow(ctx, query, equipmentID).Scan(
		&device.EquipmentID,
		&device.CustomerID,
		&device.DeviceTypeID,
		&device.BrandModel,
		&device.SerialNumber,
		&device.FirstServiceDate,
		&device.LastServiceDate,
		&device.Notes,
		&device.CustodyStatus,
		&device.CustodyChangedDate,
	); err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) ListByCustomer(ctx context.Context, customerID int64) ([]DeviceWithType, error) {
	const query = `
        SELECT d.equipment_id, d.customer_id, d.device_type_id, d.brand_model, d.serial_number,
               d.first_service_date, d.last_service_date, d.notes, d.custody_status, d.custody_changed_date,
               t.name
        FROM customer_device d
        LEFT JOIN device_type t ON d.device_type_id = t.id
        WHERE d.customer_id=$1
        ORDER BY d.equipment_id`
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DeviceWithType
	for rows.Next() {
		var device DeviceWithType
		if err := rows.Scan(
			&device.EquipmentID,
			&device.CustomerID,
			&device.DeviceTypeID,
			&device.BrandModel,
			&device.SerialNumber,
			&device.FirstServiceDate,
			&device.LastServiceDate,
			&device.Notes,
			&device.CustodyStatus,
			&device.CustodyChangedDate,
			&device.DeviceTypeName,
		); err != nil {
			return nil, err
		}
		result = append(result, device)
	}
	return result, rows.Err()
}

func (r *deviceRepository) Delete(ctx context.Context, equipmentID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customer_device WHERE equipment_id=$1`, equipmentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
