package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/counterdesk/counter-dispatch/internal/events"
)

type fakeSink struct {
	name      string
	err       error
	delivered []events.EventType
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Deliver(_ context.Context, e events.Event) error {
	f.delivered = append(f.delivered, e.Type)
	return f.err
}

func TestNotificationService_FansOutToEverySink(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	broken := &fakeSink{name: "broken", err: errors.New("unreachable")}
	healthy := &fakeSink{name: "healthy"}
	NewNotificationService(dispatcher, zap.NewNop(), broken, healthy).RegisterHandlers()

	ctx := context.Background()
	err := dispatcher.Publish(ctx, events.Event{Type: events.EventTicketIssued})
	assert.ErrorContains(t, err, "unreachable")
	err = dispatcher.Publish(ctx, events.Event{Type: events.EventServiceFinalized})
	assert.ErrorContains(t, err, "unreachable")

	want := []events.EventType{events.EventTicketIssued, events.EventServiceFinalized}
	assert.Equal(t, want, broken.delivered)
	assert.Equal(t, want, healthy.delivered)
}

func TestNotificationService_NoSinks(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, zap.NewNop()).RegisterHandlers()
	assert.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketCalled}))
}
