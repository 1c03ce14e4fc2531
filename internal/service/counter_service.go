package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/counterdesk/counter-dispatch/internal/counter"
	"github.com/counterdesk/counter-dispatch/internal/domain"
	"github.com/counterdesk/counter-dispatch/internal/events"
	"github.com/counterdesk/counter-dispatch/internal/observability"
	apperrors "github.com/counterdesk/counter-dispatch/pkg/util/errorutil"
)

// CounterService coordinates counter workflows and their side effects.
type CounterService struct {
	counter    *counter.Dispatcher
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// CounterDependencies bundles collaborators for the counter service.
type CounterDependencies struct {
	Counter    *counter.Dispatcher
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewCounterService constructs the service.
func NewCounterService(deps CounterDependencies) *CounterService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CounterService{
		counter:    deps.Counter,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// CounterID returns the identifier of the managed counter.
func (s *CounterService) CounterID() string {
	return s.counter.CounterID()
}

// IssueTicket issues a ticket of class.
func (s *CounterService) IssueTicket(ctx context.Context, class domain.TicketClass) (domain.Ticket, error) {
	ticket, err := s.counter.IssueTicket(class)
	if err != nil {
		return domain.Ticket{}, err
	}

	s.metrics.RecordIssued(ticket.Class)
	s.metrics.SetQueueLengths(s.counter.QueueCounts())
	s.logger.Info("ticket issued",
		zap.String("number", ticket.Number),
		zap.String("class", string(ticket.Class)))

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketIssued,
		TicketNumber: ticket.Number,
		TicketClass:  ticket.Class,
		Timestamp:    ticket.IssuedAt,
		Payload: events.TicketIssuedPayload{
			SimulatedDuration: ticket.SimulatedDuration,
			IssuedAt:          ticket.IssuedAt,
		},
	})
	return ticket, nil
}

// CallNext brings the next waiting ticket to the counter.
func (s *CounterService) CallNext(ctx context.Context) (domain.CallResult, error) {
	res, err := s.counter.CallNext()
	if err != nil {
		if errors.Is(err, counter.ErrCounterBusy) {
			s.metrics.RecordCall(observability.CallResultBusy)
			s.logger.Warn("call rejected; counter busy")
		}
		return res, err
	}
	if res.QueueEmpty {
		s.metrics.RecordCall(observability.CallResultEmpty)
		s.logger.Info("call skipped; queue empty")
		return res, nil
	}

	t := res.Ticket
	s.metrics.RecordCall(observability.CallResultServed)
	s.metrics.SetQueueLengths(s.counter.QueueCounts())
	s.logger.Info("ticket called",
		zap.String("number", t.Number),
		zap.String("class", string(t.Class)),
		zap.String("counter_id", res.CounterID))

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketCalled,
		TicketNumber: t.Number,
		TicketClass:  t.Class,
		CounterID:    res.CounterID,
		Timestamp:    *t.ServiceStartedAt,
		Payload: events.TicketCalledPayload{
			ServiceStartedAt: *t.ServiceStartedAt,
			RecentCalls:      s.counter.RecentCalls(),
		},
	})
	return res, nil
}

// FinalizeService closes the current service. It returns nil when the
// counter is idle.
func (s *CounterService) FinalizeService(ctx context.Context, outcome domain.ServiceOutcome) (*domain.Ticket, error) {
	t, err := s.counter.Finalize(outcome)
	if err != nil || t == nil {
		return t, err
	}

	s.metrics.RecordFinalized(outcome)
	s.logger.Info("service finalized",
		zap.String("number", t.Number),
		zap.String("status", string(t.Status)),
		zap.String("estimated_duration", t.EstimatedDuration))

	s.publishEvent(ctx, events.Event{
		Type:         events.EventServiceFinalized,
		TicketNumber: t.Number,
		TicketClass:  t.Class,
		CounterID:    s.counter.CounterID(),
		Timestamp:    *t.ServiceEndedAt,
		Payload: events.ServiceFinalizedPayload{
			Outcome:           outcome,
			Status:            t.Status,
			EstimatedDuration: t.EstimatedDuration,
			ServiceEndedAt:    *t.ServiceEndedAt,
		},
	})
	return t, nil
}

// Stats returns aggregate ticket statistics.
func (s *CounterService) Stats() domain.Stats {
	return s.counter.Stats()
}

// EstimatedDuration draws a fresh duration label for a ticket.
func (s *CounterService) EstimatedDuration(number string) (string, error) {
	label, ok := s.counter.EstimatedDuration(number)
	if !ok {
		return label, apperrors.NewNotFound("ticket", map[string]any{"number": number})
	}
	return label, nil
}

// GetTicket returns one issued ticket.
func (s *CounterService) GetTicket(number string) (domain.Ticket, error) {
	t, ok := s.counter.Ticket(number)
	if !ok {
		return t, apperrors.NewNotFound("ticket", map[string]any{"number": number})
	}
	return t, nil
}

// ListTickets returns every issued ticket in issuance order.
func (s *CounterService) ListTickets() []domain.Ticket {
	return s.counter.Tickets()
}

// Panel returns the display board view.
func (s *CounterService) Panel() domain.Panel {
	return s.counter.Panel()
}

func (s *CounterService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Error("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_number", event.TicketNumber),
			zap.Error(err))
	}
}
