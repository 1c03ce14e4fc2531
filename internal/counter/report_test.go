package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/counterdesk/counter-dispatch/internal/domain"
)

func TestReport_StatsFollowInPlaceMutations(t *testing.T) {
	r := NewReport()
	sp := waiting("SP01", domain.TicketClassPriority)
	se := waiting("SE01", domain.TicketClassNormalA)
	sg := waiting("SG01", domain.TicketClassNormalB)
	r.Record(sp)
	r.Record(se)
	r.Record(sg)

	assert.Equal(t, domain.Stats{IssuedTotal: 3, PriorityIssuedTotal: 1}, r.Stats())

	sp.Status = domain.TicketStatusCompleted
	se.Status = domain.TicketStatusAbsent
	sg.Status = domain.TicketStatusCompleted

	assert.Equal(t, domain.Stats{
		IssuedTotal:            3,
		CompletedTotal:         2,
		PriorityIssuedTotal:    1,
		PriorityCompletedTotal: 1,
	}, r.Stats())
}

func TestReport_TicketsAreCopies(t *testing.T) {
	r := NewReport()
	sp := waiting("SP01", domain.TicketClassPriority)
	r.Record(sp)

	tickets := r.Tickets()
	tickets[0].Status = domain.TicketStatusAbsent

	assert.Equal(t, domain.TicketStatusWaiting, sp.Status)
	assert.Same(t, sp, r.Find("SP01"))
	assert.Nil(t, r.Find("SP02"))
}
