package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orca-works/orca-crm/internal/domain"
)

// WorklogRepository encapsulates ticket worklog persistence.
type WorklogRepository interface {
	Create(ctx context.Context, worklog *domain.Worklog) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.Worklog, error)
}

type worklogRepository struct {
	pool *pgxpool.Pool
}

// NewWorklogRepository instantiates repository.
func NewWorklogRepository(pool *pgxpool.Pool) WorklogRepository {
	return &worklogRepository{pool: pool}
}

func (r *worklogRepository) Create(ctx context.Context, worklog *domain.Worklog) error {
	const query = `
        INSERT INTO ticket_worklog (ticket_id, description, hours)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		worklog.TicketID,
		worklog.Description,
		worklog.Hours,
	).Scan(&worklog.ID, &worklog.CreatedAt, &worklog.UpdatedAt)
}

func (r *worklogRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Worklog, error) {
	const query = `
        SELECT id, ticket_id, description, hours, created_at, updated_at
        FROM ticket_worklog WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Worklog
	for rows.Next() {
		var worklog domain.Worklog
		if err := rows.Scan(
			&worklog.ID,
			&worklog.TicketID,
			&worklog.Description,
			&worklog.Hours,
			&worklog.CreatedAt,
			&worklog.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, worklog)
	}
	return result, rows.Err()
}
