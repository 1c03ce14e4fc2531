package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/counterdesk/counter-dispatch/internal/events"
)

// Sink receives lifecycle events for delivery outside the process.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, event events.Event) error
}

// NotificationService fans lifecycle events out to the display and streaming sinks.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	sinks      []Sink
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, sinks ...Sink) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		sinks:      sinks,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketIssued, n.handleTicketIssued)
	n.dispatcher.Subscribe(events.EventTicketCalled, n.handleTicketCalled)
	n.dispatcher.Subscribe(events.EventServiceFinalized, n.handleServiceFinalized)
}

func (n *NotificationService) handleTicketIssued(ctx context.Context, event events.Event) error {
	n.logger.Debug("TicketIssued", zap.String("ticket_number", event.TicketNumber), zap.Any("payload", event.Payload))
	return n.deliver(ctx, event)
}

func (n *NotificationService) handleTicketCalled(ctx context.Context, event events.Event) error {
	n.logger.Debug("TicketCalled", zap.String("ticket_number", event.TicketNumber), zap.String("counter_id", event.CounterID))
	return n.deliver(ctx, event)
}

func (n *NotificationService) handleServiceFinalized(ctx context.Context, event events.Event) error {
	n.logger.Debug("ServiceFinalized", zap.String("ticket_number", event.TicketNumber), zap.Any("payload", event.Payload))
	return n.deliver(ctx, event)
}

func (n *NotificationService) deliver(ctx context.Context, event events.Event) error {
	var errs []error
	for _, sink := range n.sinks {
		if err := sink.Deliver(ctx, event); err != nil {
			n.logger.Warn("sink delivery failed",
				zap.String("sink", sink.Name()),
				zap.String("event_type", string(event.Type)),
				zap.String("ticket_number", event.TicketNumber),
				zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
