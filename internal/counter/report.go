package counter

import "github.com/counterdesk/counter-dispatch/internal/domain"

// Report is the append-only log of every issued ticket.
// It stores the same ticket records the queue and service slot mutate.
type Report struct {
	log []*domain.Ticket
}

// NewReport returns an empty log.
func NewReport() *Report {
	return &Report{}
}

// Record appends an issued ticket.
func (r *Report) Record(ticket *domain.Ticket) {
	r.log = append(r.log, ticket)
}

// Find returns the logged ticket with number, or nil.
func (r *Report) Find(number string) *domain.Ticket {
	for _, t := range r.log {
		if t.Number == number {
			return t
		}
	}
	return nil
}

// Stats scans the log's current statuses.
func (r *Report) Stats() domain.Stats {
	var stats domain.Stats
	for _, t := range r.log {
		stats.IssuedTotal++
		completed := t.Status == domain.TicketStatusCompleted
		if completed {
			stats.CompletedTotal++
		}
		if t.Class == domain.TicketClassPriority {
			stats.PriorityIssuedTotal++
			if completed {
				stats.PriorityCompletedTotal++
			}
		}
	}
	return stats
}

// Tickets returns copies of every logged ticket in issuance order.
func (r *Report) Tickets() []domain.Ticket {
	out := make([]domain.Ticket, 0, len(r.log))
	for _, t := range r.log {
		out = append(out, t.Clone())
	}
	return out
}
