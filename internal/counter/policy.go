package counter

import "github.com/counterdesk/counter-dispatch/internal/domain"

const (
	priorityTurnLabel = "SP (Priority)"
	normalTurnLabel   = "SE/SG (Normal)"
)

// AlternatingPolicy interleaves priority tickets with normal ones.
//
// On a priority turn the earliest priority ticket wins and hands the turn to
// the normal classes; when no priority ticket waits, a normal ticket is served
// and the turn stays with priority. On a normal turn SE beats SG, priority is
// the fallback, and the turn always goes back to priority, even on a miss.
type AlternatingPolicy struct {
	priorityTurn bool
}

// NewAlternatingPolicy starts on a priority turn.
func NewAlternatingPolicy() *AlternatingPolicy {
	return &AlternatingPolicy{priorityTurn: true}
}

// PriorityTurn reports whether the next selection favors priority tickets.
func (p *AlternatingPolicy) PriorityTurn() bool {
	return p.priorityTurn
}

// TurnLabel describes the class group favored by the next selection.
func (p *AlternatingPolicy) TurnLabel() string {
	if p.priorityTurn {
		return priorityTurnLabel
	}
	return normalTurnLabel
}

// SelectNext picks the next ticket to serve without removing it from q.
func (p *AlternatingPolicy) SelectNext(q *Queue) *domain.Ticket {
	if q.Len() == 0 {
		return nil
	}

	if p.priorityTurn {
		if t := q.FirstOfClass(domain.TicketClassPriority); t != nil {
			p.priorityTurn = false
			return t
		}
		return firstNormal(q)
	}

	chosen := firstNormal(q)
	if chosen == nil {
		chosen = q.FirstOfClass(domain.TicketClassPriority)
	}
	p.priorityTurn = true
	return chosen
}

func firstNormal(q *Queue) *domain.Ticket {
	if t := q.FirstOfClass(domain.TicketClassNormalA); t != nil {
		return t
	}
	return q.FirstOfClass(domain.TicketClassNormalB)
}
