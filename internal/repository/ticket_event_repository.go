package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/counterdesk/counter-dispatch/internal/domain"
)

// TicketEventRepository stores the ticket lifecycle audit trail.
type TicketEventRepository interface {
	Create(ctx context.Context, event *domain.TicketEvent) error
	ListByTicket(ctx context.Context, ticketNumber string) ([]domain.TicketEvent, error)
}

type ticketEventRepository struct {
	pool *pgxpool.Pool
}

// NewTicketEventRepository builds repository.
func NewTicketEventRepository(pool *pgxpool.Pool) TicketEventRepository {
	return &ticketEventRepository{pool: pool}
}

func (r *ticketEventRepository) Create(ctx context.Context, event *domain.TicketEvent) error {
	const query = `
        INSERT INTO ticket_events (id, ticket_number, ticket_class, event_type, status, counter_id, payload, occurred_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		event.ID,
		event.TicketNumber,
		event.TicketClass,
		event.EventType,
		event.Status,
		event.CounterID,
		event.Payload,
		event.OccurredAt,
	).Scan(&event.CreatedAt)
}

func (r *ticketEventRepository) ListByTicket(ctx context.Context, ticketNumber string) ([]domain.TicketEvent, error) {
	const query = `
        SELECT id, ticket_number, ticket_class, event_type, status, counter_id, payload, occurred_at, created_at
        FROM ticket_events WHERE ticket_number=$1 ORDER BY occurred_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketEvent
	for rows.Next() {
		var event domain.TicketEvent
		if err := rows.Scan(
			&event.ID,
			&event.TicketNumber,
			&event.TicketClass,
			&event.EventType,
			&event.Status,
			&event.CounterID,
			&event.Payload,
			&event.OccurredAt,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
