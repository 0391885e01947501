package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

//go:generate mockgen -source=ticket_repository.go -destination=ticket_repository_mock.go -package=repository

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]domain.TicketDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TicketDetail, error)
	Create(ctx context.Context, ticket *domain.Ticket) error
	// Update applies p and returns the status the ticket had before it.
	Update(ctx context.Context, id uuid.UUID, p domain.TicketPatch) (domain.TicketStatus, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool, now: time.Now}
}

const ticketDetailQuery = `
        SELECT t.id, t.title, t.description, t.requester, t.status::text, t.closed_by, t.solution,
               t.created_at, t.updated_at, t.closed_at,
               r.id, r.username, r.email, r.first_name, r.last_name,
               c.id, c.username, c.email, c.first_name, c.last_name
        FROM tickets t
        JOIN users r ON r.id = t.requester
        LEFT JOIN users c ON c.id = t.closed_by`

func (r *ticketRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM tickets`).Scan(&n)
	return n, translate(err)
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.TicketDetail, error) {
	rows, err := r.pool.Query(ctx, ticketDetailQuery+` ORDER BY t.created_at, t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.TicketDetail, 0)
	for rows.Next() {
		ticket, err := scanTicketDetail(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, rows.Err()
}

func (r *ticketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TicketDetail, error) {
	ticket, err := scanTicketDetail(r.pool.QueryRow(ctx, ticketDetailQuery+` WHERE t.id=$1`, id))
	return ticket, translate(err)
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (id, title, description, requester, status, closed_by, solution, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5::ticket_status, $6, $7, $8, $8)`

	now := r.now().UTC()
	if _, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Title,
		ticket.Description,
		ticket.RequesterID,
		string(ticket.Status),
		ticket.ClosedByID,
		ticket.Solution,
		now,
	); err != nil {
		return translate(err)
	}
	ticket.CreatedAt, ticket.UpdatedAt = now, now
	return nil
}

// Update runs the partial update in one transaction. The previous status is
// read under a row lock so the closed_at decision and the write agree.
func (r *ticketRepository) Update(ctx context.Context, id uuid.UUID, p domain.TicketPatch) (domain.TicketStatus, error) {
	if p.Empty() {
		return "", ErrNotModified
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var prev domain.TicketStatus
	if err := tx.QueryRow(ctx, `SELECT status::text FROM tickets WHERE id=$1 FOR UPDATE`, id).Scan(&prev); err != nil {
		return "", translate(err)
	}

	b := ticketUpdate(p, prev, r.now().UTC())
	if b.empty() {
		return prev, ErrNotModified
	}
	query, args := b.build("id", id)
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return "", translate(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return prev, nil
}

// Delete removes the ticket. Deleting a missing id is not an error.
func (r *ticketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	return err
}

func (r *ticketRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tickets WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func scanTicketDetail(row pgx.Row) (*domain.TicketDetail, error) {
	var (
		t        domain.TicketDetail
		closedID *uuid.UUID
		closedBy *string
		closedEm *string
		closedFN *string
		closedLN *string
	)
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.RequesterID,
		&t.Status,
		&t.ClosedByID,
		&t.Solution,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.ClosedAt,
		&t.Requester.ID,
		&t.Requester.Username,
		&t.Requester.Email,
		&t.Requester.FirstName,
		&t.Requester.LastName,
		&closedID,
		&closedBy,
		&closedEm,
		&closedFN,
		&closedLN,
	); err != nil {
		return nil, err
	}
	if closedID != nil && closedBy != nil {
		t.ClosedBy = &domain.UserSummary{
			ID:        *closedID,
			Username:  *closedBy,
			Email:     closedEm,
			FirstName: closedFN,
			LastName:  closedLN,
		}
	}
	return &t, nil
}
