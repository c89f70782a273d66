package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orca-works/orca-crm/internal/domain"
)

// TypeRepository reads the lookup dictionaries. They carry no behavior,
// so a single repository serves all three.
type TypeRepository interface {
	ListTicketTypes(ctx context.Context) ([]domain.TicketType, error)
	ListTaskTypes(ctx context.Context) ([]domain.TaskType, error)
	ListDeviceTypes(ctx context.Context) ([]domain.DeviceType, error)
}

type typeRepository struct {
	pool *pgxpool.Pool
}

// NewTypeRepository instantiates repository.
func NewTypeRepository(pool *pgxpool.Pool) TypeRepository {
	return &typeRepository{pool: pool}
}

func (r *typeRepository) ListTicketTypes(ctx context.Context) ([]domain.TicketType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM ticket_type ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketType
	for rows.Next() {
		var entry domain.TicketType
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Description); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *typeRepository) ListTaskTypes(ctx context.Context) ([]domain.TaskType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM task_type ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaskType
	for rows.Next() {
		var entry domain.TaskType
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Description); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *typeRepository) ListDeviceTypes(ctx context.Context) ([]domain.DeviceType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM device_type ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DeviceType
	for rows.Next() {
		var entry domain.DeviceType
		if err := rows.Scan(&entry.ID, &entry.Name); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
