package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/counterdesk/counter-dispatch/internal/domain"
	"github.com/counterdesk/counter-dispatch/internal/events"
)

type memoryEventRepo struct {
	entries []domain.TicketEvent
	err     error
}

func (m *memoryEventRepo) Create(_ context.Context, e *domain.TicketEvent) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memoryEventRepo) ListByTicket(_ context.Context, number string) ([]domain.TicketEvent, error) {
	var out []domain.TicketEvent
	for _, e := range m.entries {
		if e.TicketNumber == number {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestAuditService_RecordsLifecycle(t *testing.T) {
	repo := &memoryEventRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	audit := NewAuditService(repo, dispatcher, zap.NewNop())
	audit.RegisterHandlers()

	ctx := context.Background()
	ended := time.Date(2026, 10, 18, 9, 12, 0, 0, time.UTC)
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:         events.EventTicketIssued,
		TicketNumber: "261018-SE01",
		TicketClass:  domain.TicketClassNormalA,
		Payload:      events.TicketIssuedPayload{SimulatedDuration: "0.8 min"},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:         events.EventTicketCalled,
		TicketNumber: "261018-SE01",
		TicketClass:  domain.TicketClassNormalA,
		CounterID:    "01",
		Payload:      events.TicketCalledPayload{},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:         events.EventServiceFinalized,
		TicketNumber: "261018-SE01",
		TicketClass:  domain.TicketClassNormalA,
		Payload: events.ServiceFinalizedPayload{
			Outcome:           domain.OutcomeAbsent,
			Status:            domain.TicketStatusAbsent,
			EstimatedDuration: "0 min",
			ServiceEndedAt:    ended,
		},
	}))

	trail, err := audit.ListTicketEvents(ctx, "261018-SE01")
	require.NoError(t, err)
	require.Len(t, trail, 3)
	assert.Equal(t, domain.TicketEventIssued, trail[0].EventType)
	assert.Equal(t, domain.TicketStatusWaiting, trail[0].Status)
	assert.Equal(t, "0.8 min", trail[0].Payload["simulated_duration"])
	assert.Equal(t, domain.TicketStatusInService, trail[1].Status)
	assert.Equal(t, "01", trail[1].CounterID)
	assert.Equal(t, domain.TicketEventFinalized, trail[2].EventType)
	assert.Equal(t, domain.TicketStatusAbsent, trail[2].Status)
	assert.Equal(t, "0 min", trail[2].Payload["estimated_duration"])
}

func TestAuditService_WriteFailureSurfaces(t *testing.T) {
	repo := &memoryEventRepo{err: errors.New("pool closed")}
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(repo, dispatcher, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketIssued, TicketNumber: "x"})
	assert.ErrorContains(t, err, "pool closed")
}

func TestAuditService_Disabled(t *testing.T) {
	audit := NewAuditService(nil, events.NewInMemoryDispatcher(), zap.NewNop())
	assert.False(t, audit.Enabled())
	audit.RegisterHandlers()

	_, err := audit.ListTicketEvents(context.Background(), "x")
	assert.Error(t, err)
}
