package counter

import "github.com/counterdesk/counter-dispatch/internal/domain"

// Queue holds waiting tickets in arrival order.
// Per-class order is implied by scanning the single sequence.
type Queue struct {
	items []*domain.Ticket
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a waiting ticket.
func (q *Queue) Enqueue(ticket *domain.Ticket) {
	q.items = append(q.items, ticket)
}

// Remove drops the ticket with the given number. Unknown numbers are ignored.
func (q *Queue) Remove(number string) bool {
	for i, t := range q.items {
		if t.Number == number {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// FirstOfClass returns the earliest waiting ticket of class, or nil.
func (q *Queue) FirstOfClass(class domain.TicketClass) *domain.Ticket {
	for _, t := range q.items {
		if t.Class == class {
			return t
		}
	}
	return nil
}

// Counts returns the number of waiting tickets per class.
func (q *Queue) Counts() map[domain.TicketClass]int {
	counts := make(map[domain.TicketClass]int, len(domain.TicketClasses))
	for _, class := range domain.TicketClasses {
		counts[class] = 0
	}
	for _, t := range q.items {
		counts[t.Class]++
	}
	return counts
}

// Len returns the total number of waiting tickets.
func (q *Queue) Len() int {
	return len(q.items)
}
