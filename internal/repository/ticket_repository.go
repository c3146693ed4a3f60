package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/pkg/util"
)

// DefaultPageSize bounds list responses when the caller does not ask
// for a size.
const DefaultPageSize = 20

// Page selects a window of a filtered listing.
type Page struct {
	Limit  int
	Offset int
}

// Normalize returns the effective limit and offset.
func (p Page) Normalize() (limit, offset int) {
	limit = p.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	offset = p.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// TicketRepository encapsulates ticket persistence. Tickets are never
// deleted; UpdateStatus is the only mutation of an existing record.
type TicketRepository interface {
	Create(ctx context.Context, ticket domain.Ticket) error
	GetByID(ctx context.Context, id string) (domain.Ticket, error)
	List(ctx context.Context, criteria domain.FilterCriteria, page Page) ([]domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the postgres-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket domain.Ticket) error {
	const query = `
        INSERT INTO tickets (id, title, description, category, priority, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		ticket.Priority,
		ticket.Status,
		ticket.CreatedAt,
	)
	return err
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (domain.Ticket, error) {
	const query = `
        SELECT id, title, description, category, priority, status, created_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Ticket{}, util.NewNotFound("ticket", map[string]any{"id": id})
		}
		return domain.Ticket{}, err
	}
	return ticket, nil
}

// List applies the filter criteria server-side. The SQL predicate must
// agree with domain.FilterCriteria.Matches; both are exercised by the
// same fixtures in tests.
func (r *ticketRepository) List(ctx context.Context, criteria domain.FilterCriteria, page Page) ([]domain.Ticket, error) {
	base := `SELECT id, title, description, category, priority, status, created_at FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if criteria.HasCategory() {
		args = append(args, criteria.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if criteria.HasPriority() {
		args = append(args, criteria.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}
	if criteria.HasStatus() {
		args = append(args, criteria.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if criteria.HasSearch() {
		search := "%" + escapeLike(strings.ToLower(strings.TrimSpace(criteria.Search))) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit, offset := page.Normalize()
	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// ListAll returns the entire collection for aggregation; no paging.
func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, title, description, category, priority, status, created_at
        FROM tickets ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// UpdateStatus atomically replaces the status of a single record and
// returns the updated ticket. All other fields are left untouched.
func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (domain.Ticket, error) {
	const query = `
        UPDATE tickets SET status=$1 WHERE id=$2
        RETURNING id, title, description, category, priority, status, created_at`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Ticket{}, util.NewNotFound("ticket", map[string]any{"id": id})
		}
		return domain.Ticket{}, err
	}
	return ticket, nil
}

// escapeLike neutralizes LIKE metacharacters so the search term matches
// literally, the same way domain.FilterCriteria.Matches treats it.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Category,
			&ticket.Priority,
			&ticket.Status,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
