package counter

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counterdesk/counter-dispatch/internal/domain"
	apperrors "github.com/counterdesk/counter-dispatch/pkg/util/errorutil"
)

var testNow = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(Options{Seed: 1, Clock: fixedClock(testNow)})
}

func issue(t *testing.T, d *Dispatcher, class domain.TicketClass) domain.Ticket {
	t.Helper()
	ticket, err := d.IssueTicket(class)
	require.NoError(t, err)
	return ticket
}

func TestDispatcher_InitialState(t *testing.T) {
	d := newTestDispatcher()
	panel := d.Panel()

	assert.Equal(t, "----", panel.CurrentNumber)
	assert.Equal(t, "--", panel.CounterID)
	assert.Equal(t, "System ready.", panel.StatusMessage)
	assert.Equal(t, "SP (Priority)", panel.NextTurn)
	assert.Empty(t, panel.RecentCalls)
	assert.Nil(t, panel.Serving)
	assert.Equal(t, domain.Stats{}, d.Stats())
}

func TestDispatcher_IssueTicket(t *testing.T) {
	d := newTestDispatcher()
	ticket := issue(t, d, domain.TicketClassNormalB)

	assert.Equal(t, "261018-SG01", ticket.Number)
	assert.Equal(t, domain.TicketStatusWaiting, ticket.Status)
	assert.Equal(t, testNow, ticket.IssuedAt)
	assert.Regexp(t, labelPattern, ticket.SimulatedDuration)
	assert.Equal(t, 1, d.QueueCounts()[domain.TicketClassNormalB])
	assert.Equal(t, 1, d.Stats().IssuedTotal)
}

func TestDispatcher_IssueTicketRejectsUnknownClass(t *testing.T) {
	d := newTestDispatcher()
	_, err := d.IssueTicket("XX")

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, 0, d.Stats().IssuedTotal)
}

func TestDispatcher_CallNextOnEmptyQueue(t *testing.T) {
	d := newTestDispatcher()
	res, err := d.CallNext()

	require.NoError(t, err)
	assert.True(t, res.QueueEmpty)
	assert.Nil(t, res.Ticket)
	assert.Equal(t, "Queue empty.", d.StatusMessage())
	_, serving := d.Current()
	assert.False(t, serving)
}

func TestDispatcher_Scenario(t *testing.T) {
	d := newTestDispatcher()
	sp := issue(t, d, domain.TicketClassPriority)
	se := issue(t, d, domain.TicketClassNormalA)
	issue(t, d, domain.TicketClassNormalB)

	res, err := d.CallNext()
	require.NoError(t, err)
	require.NotNil(t, res.Ticket)
	assert.Equal(t, sp.Number, res.Ticket.Number)
	assert.Equal(t, "01", res.CounterID)
	assert.Equal(t, domain.TicketStatusInService, res.Ticket.Status)
	require.NotNil(t, res.Ticket.ServiceStartedAt)
	assert.Equal(t, "SE/SG (Normal)", d.Panel().NextTurn)
	assert.Equal(t, "Serving: "+sp.Number, d.StatusMessage())

	_, err = d.CallNext()
	assert.ErrorIs(t, err, ErrCounterBusy)
	current, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, sp.Number, current.Number)

	done, err := d.Finalize(domain.OutcomeCompleted)
	require.NoError(t, err)
	require.NotNil(t, done)
	assert.Equal(t, domain.TicketStatusCompleted, done.Status)
	require.NotNil(t, done.ServiceEndedAt)
	assert.Regexp(t, labelPattern, done.EstimatedDuration)
	assert.Equal(t, "Counter free.", d.StatusMessage())
	_, ok = d.Current()
	assert.False(t, ok)

	res, err = d.CallNext()
	require.NoError(t, err)
	require.NotNil(t, res.Ticket)
	assert.Equal(t, se.Number, res.Ticket.Number)
	assert.Equal(t, "SP (Priority)", d.Panel().NextTurn)

	stats := d.Stats()
	assert.Equal(t, 3, stats.IssuedTotal)
	assert.Equal(t, 1, stats.CompletedTotal)
	assert.Equal(t, 1, stats.PriorityIssuedTotal)
	assert.Equal(t, 1, stats.PriorityCompletedTotal)
}

func TestDispatcher_FinalizeAbsent(t *testing.T) {
	d := newTestDispatcher()
	issue(t, d, domain.TicketClassPriority)
	_, err := d.CallNext()
	require.NoError(t, err)

	done, err := d.Finalize(domain.OutcomeAbsent)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusAbsent, done.Status)
	assert.Equal(t, "0 min", done.EstimatedDuration)
	assert.Equal(t, 0, d.Stats().CompletedTotal)
}

func TestDispatcher_FinalizeWhileIdleIsNoop(t *testing.T) {
	d := newTestDispatcher()
	issue(t, d, domain.TicketClassNormalA)

	done, err := d.Finalize(domain.OutcomeCompleted)
	require.NoError(t, err)
	assert.Nil(t, done)
	assert.Equal(t, "System ready.", d.StatusMessage())
	assert.Equal(t, domain.TicketStatusWaiting, d.Tickets()[0].Status)
}

func TestDispatcher_FinalizeRejectsUnknownOutcome(t *testing.T) {
	d := newTestDispatcher()
	_, err := d.Finalize("later")
	require.Error(t, err)
}

func TestDispatcher_RecentCallsBounded(t *testing.T) {
	d := newTestDispatcher()
	var called []string
	for i := 0; i < 8; i++ {
		issue(t, d, domain.TicketClassNormalB)
	}
	for i := 0; i < 8; i++ {
		res, err := d.CallNext()
		require.NoError(t, err)
		called = append(called, res.Ticket.Number)
		_, err = d.Finalize(domain.OutcomeCompleted)
		require.NoError(t, err)

		history := d.RecentCalls()
		assert.LessOrEqual(t, len(history), 5)
	}

	assert.Equal(t, []string{called[6], called[5], called[4], called[3], called[2]}, d.RecentCalls())
	assert.Equal(t, called[7], d.Panel().CurrentNumber)
}

func TestDispatcher_HistorySizeOption(t *testing.T) {
	d := NewDispatcher(Options{HistorySize: 2, CounterID: "07", Seed: 5})
	for i := 0; i < 4; i++ {
		issue(t, d, domain.TicketClassNormalA)
	}
	for i := 0; i < 4; i++ {
		res, err := d.CallNext()
		require.NoError(t, err)
		assert.Equal(t, "07", res.CounterID)
		_, err = d.Finalize(domain.OutcomeAbsent)
		require.NoError(t, err)
	}
	assert.Len(t, d.RecentCalls(), 2)
}

func TestDispatcher_QueueNeverHoldsNonWaiting(t *testing.T) {
	d := newTestDispatcher()
	issue(t, d, domain.TicketClassPriority)
	issue(t, d, domain.TicketClassPriority)
	_, err := d.CallNext()
	require.NoError(t, err)

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, ticket := range d.queue.items {
		assert.Equal(t, domain.TicketStatusWaiting, ticket.Status)
	}
	assert.Equal(t, 1, d.queue.Len())
}

func TestDispatcher_ReturnedTicketsAreCopies(t *testing.T) {
	d := newTestDispatcher()
	ticket := issue(t, d, domain.TicketClassNormalA)
	ticket.Status = domain.TicketStatusAbsent

	stored, ok := d.Ticket(ticket.Number)
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusWaiting, stored.Status)
}

func TestDispatcher_EstimatedDuration(t *testing.T) {
	d := newTestDispatcher()
	ticket := issue(t, d, domain.TicketClassNormalB)

	label, ok := d.EstimatedDuration(ticket.Number)
	assert.True(t, ok)
	assert.Regexp(t, labelPattern, label)

	label, ok = d.EstimatedDuration("261018-SG99")
	assert.False(t, ok)
	assert.Equal(t, "-", label)
}

func TestDispatcher_AtMostOneInServiceUnderConcurrency(t *testing.T) {
	d := NewDispatcher(Options{Seed: 9})
	for i := 0; i < 50; i++ {
		issue(t, d, domain.TicketClasses[i%len(domain.TicketClasses)])
	}

	var wg sync.WaitGroup
	served := make(chan string, 200)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				res, err := d.CallNext()
				if err == nil && res.Ticket != nil {
					served <- res.Ticket.Number
				}
				_, _ = d.Finalize(domain.OutcomeCompleted)
			}
		}()
	}
	wg.Wait()
	close(served)

	seen := map[string]struct{}{}
	for number := range served {
		_, dup := seen[number]
		assert.False(t, dup, "ticket %s served twice", number)
		seen[number] = struct{}{}
	}

	inService := 0
	for _, ticket := range d.Tickets() {
		if ticket.Status == domain.TicketStatusInService {
			inService++
		}
	}
	assert.LessOrEqual(t, inService, 1)
	assert.Equal(t, 50, d.Stats().IssuedTotal)
}
