package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orca-works/orca-crm/internal/domain"
)

// TicketSummary is a ticket row joined with its customer name and the
// number of tasks attached to it, as the list views render it.
type TicketSummary struct {
	domain.Ticket
	CustomerFirstName string
	CustomerLastName  string
	TaskCount         int64
}

// TicketDetail is a ticket row joined with its type and device lookups.
type TicketDetail struct {
	domain.Ticket
	TicketTypeName     *string
	DeviceBrandModel   *string
	DeviceSerialNumber *string
	DeviceTypeID       *int64
	DeviceTypeName     *string
	DeviceNotes        *string
}

// TicketStatusCount is one cell of the per-customer status breakdown.
type TicketStatusCount struct {
	CustomerID int64
	Status     domain.TicketStatus
	Count      int64
}

// TicketFilter captures list parameters. Status "!closed" selects every
// ticket that is not closed, matching the default board view.
type TicketFilter struct {
	Status string
	Limit  int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, ticketNumber string) (*TicketDetail, error)
	List(ctx context.Context, filter TicketFilter) ([]TicketSummary, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]TicketSummary, error)
	CountCreatedOn(ctx context.Context, day time.Time) (int64, error)
	StatusCountsByCustomer(ctx context.Context) ([]TicketStatusCount, error)
	Delete(ctx context.Context, id int64) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, customer_id, subject, description, priority, ticket_number, status,
               due_at, device_id, ticket_type_id, completed_at, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO ticket (customer_id, subject, description, priority, ticket_number, status, due_at, device_id, ticket_type_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.CustomerID,
		ticket.Subject,
		ticket.Description,
		ticket.Priority,
		ticket.TicketNumber,
		ticket.Status,
		ticket.DueAt,
		ticket.DeviceID,
		ticket.TicketTypeID,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

// Update rewrites the mutable fields of a ticket. The ticket number is
// immutable once assigned and is used only to address the row.
func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE ticket SET subject=$1, status=$2, due_at=$3, description=$4, ticket_type_id=$5,
            device_id=$6, priority=$7, completed_at=$8, updated_at=NOW()
        WHERE ticket_number=$9`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Subject,
		ticket.Status,
		ticket.DueAt,
		ticket.Description,
		ticket.TicketTypeID,
		ticket.DeviceID,
		ticket.Priority,
		ticket.CompletedAt,
		ticket.TicketNumber,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM ticket WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.CustomerID,
		&ticket.Subject,
		&ticket.Description,
		&ticket.Priority,
		&ticket.TicketNumber,
		&ticket.Status,
		&ticket.DueAt,
		&ticket.DeviceID,
		&ticket.TicketTypeID,
		&ticket.CompletedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) GetByNumber(ctx context.Context, ticketNumber string) (*TicketDetail, error) {
	const query = `
        SELECT t.id, t.customer_id, t.subject, t.description, t.priority, t.ticket_number, t.status,
               t.due_at, t.device_id, t.ticket_type_id, t.completed_at, t.created_at, t.updated_at,
               tt.name, d.brand_model, d.serial_number, d.device_type_id, dt.name, d.notes
        FROM ticket t
        LEFT JOIN ticket_type tt ON t.ticket_type_id = tt.id
        LEFT JOIN customer_device d ON t.device_id = d.equipment_id
        LEFT JOIN device_type dt ON d.device_type_id = dt.id
        WHERE t.ticket_number=$1`
	var detail TicketDetail
	if err := r.pool.QueryRow(ctx, query, ticketNumber).Scan(
		&detail.ID,
		&detail.CustomerID,
		&detail.Subject,
		&detail.Description,
		&detail.Priority,
		&detail.TicketNumber,
		&detail.Status,
		&detail.DueAt,
		&detail.DeviceID,
		&detail.TicketTypeID,
		&detail.CompletedAt,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.TicketTypeName,
		&detail.DeviceBrandModel,
		&detail.DeviceSerialNumber,
		&detail.DeviceTypeID,
		&detail.DeviceTypeName,
		&detail.DeviceNotes,
	); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]TicketSummary, error) {
	base := `
        SELECT t.id, t.customer_id, t.subject, t.description, t.priority, t.ticket_number, t.status,
               t.due_at, t.device_id, t.ticket_type_id, t.completed_at, t.created_at, t.updated_at,
               c.first_name, c.last_name,
               (SELECT COUNT(*) FROM ticket_task tt WHERE tt.ticket_id = t.id)
        FROM ticket t
        LEFT JOIN customer c ON t.customer_id = c.id`

	status := filter.Status
	if status == "" {
		status = "!closed"
	}
	var clause string
	var arg string
	if status == "!closed" {
		clause = " WHERE t.status != $1"
		arg = string(domain.TicketStatusClosed)
	} else {
		clause = " WHERE t.status = $1"
		arg = status
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.pool.Query(ctx, base+clause+" ORDER BY t.created_at DESC LIMIT $2", arg, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketSummaries(rows)
}

func (r *ticketRepository) ListByCustomer(ctx context.Context, customerID int64) ([]TicketSummary, error) {
	const query = `
        SELECT t.id, t.customer_id, t.subject, t.description, t.priority, t.ticket_number, t.status,
               t.due_at, t.device_id, t.ticket_type_id, t.completed_at, t.created_at, t.updated_at,
               c.first_name, c.last_name,
               (SELECT COUNT(*) FROM ticket_task tt WHERE tt.ticket_id = t.id)
        FROM ticket t
        LEFT JOIN customer c ON t.customer_id = c.id
        WHERE t.customer_id=$1
        ORDER BY t.created_at DESC`
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketSummaries(rows)
}

// CountCreatedOn counts tickets whose creation timestamp falls on the
// given calendar day. Used by the number generator; the count is a plain
// read, so two callers can still race to the same sequence number and
// the unique constraint on ticket_number settles it.
func (r *ticketRepository) CountCreatedOn(ctx context.Context, day time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM ticket WHERE created_at::date = $1::date`
	var count int64
	if err := r.pool.QueryRow(ctx, query, day).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ticketRepository) StatusCountsByCustomer(ctx context.Context) ([]TicketStatusCount, error) {
	const query = `
        SELECT customer_id, status, COUNT(*)
        FROM ticket
        GROUP BY customer_id, status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TicketStatusCount
	for rows.Next() {
		var entry TicketStatusCount
		if err := rows.Scan(&entry.CustomerID, &entry.Status, &entry.Count); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM ticket WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTicketSummaries(rows pgx.Rows) ([]TicketSummary, error) {
	var result []TicketSummary
	for rows.Next() {
		var summary TicketSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.CustomerID,
			&summary.Subject,
			&summary.Description,
			&summary.Priority,
			&summary.TicketNumber,
			&summary.Status,
			&summary.DueAt,
			&summary.DeviceID,
			&summary.TicketTypeID,
			&summary.CompletedAt,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.CustomerFirstName,
			&summary.CustomerLastName,
			&summary.TaskCount,
		); err != nil {
			return nil, err
		}
		result = append(result, summary)
	}
	return result, rows.Err()
}
