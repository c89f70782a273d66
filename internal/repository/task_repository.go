package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orca-works/orca-crm/internal/domain"
)

// TaskWithType is a task row joined with its task type name.
type TaskWithType struct {
	domain.Task
	TaskTypeName *string
}

// TaskRepository encapsulates ticket task persistence.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByTicket(ctx context.Context, ticketID int64) ([]TaskWithType, error)
	Delete(ctx context.Context, id int64) error
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO ticket_task (ticket_id, task_type_id, task_description, minutes, status, notes, completed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		task.TicketID,
		task.TaskTypeID,
		task.Description,
		task.Minutes,
		task.Status,
		task.Notes,
		task.CompletedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE ticket_task SET task_type_id=$1, task_description=$2, minutes=$3, status=$4,
            notes=$5, completed_at=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		task.TaskTypeID,
		task.Description,
		task.Minutes,
		task.Status,
		task.Notes,
		task.CompletedAt,
		task.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	const query = `
        SELECT id, ticket_id, task_type_id, task_description, minutes, status, notes, completed_at, created_at, updated_at
        FROM ticket_task WHERE id=$1`
	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.TicketID,
		&task.TaskTypeID,
		&task.Description,
		&task.Minutes,
		&task.Status,
		&task.Notes,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByTicket(ctx context.Context, ticketID int64) ([]TaskWithType, error) {
	const query = `
        SELECT tt.id, tt.ticket_id, tt.task_type_id, tt.task_description, tt.minutes, tt.status,
               tt.notes, tt.completed_at, tt.created_at, tt.updated_at, ty.name
        FROM ticket_task tt
        LEFT JOIN task_type ty ON tt.task_type_id = ty.id
        WHERE tt.ticket_id=$1
        ORDER BY tt.created_at DESC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TaskWithType
	for rows.Next() {
		var task TaskWithType
		if err := rows.Scan(
			&task.ID,
			&task.TicketID,
			&task.TaskTypeID,
			&task.Description,
			&task.Minutes,
			&task.Status,
			&task.Notes,
			&task.CompletedAt,
			&task.CreatedAt,
			&task.UpdatedAt,
			&task.TaskTypeName,
		); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM ticket_task WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
