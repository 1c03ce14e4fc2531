package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/counterdesk/counter-dispatch/internal/domain"
	"github.com/counterdesk/counter-dispatch/internal/events"
	"github.com/counterdesk/counter-dispatch/internal/repository"
	apperrors "github.com/counterdesk/counter-dispatch/pkg/util/errorutil"
)

// AuditService writes the lifecycle audit trail. The trail is write-only from
// the dispatcher's point of view; engine state is never rebuilt from it.
type AuditService struct {
	repo       repository.TicketEventRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service. A nil repo disables the trail.
func NewAuditService(repo repository.TicketEventRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{repo: repo, dispatcher: dispatcher, logger: logger}
}

// Enabled reports whether an audit store is configured.
func (a *AuditService) Enabled() bool {
	return a != nil && a.repo != nil
}

// RegisterHandlers subscribes to lifecycle events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil || !a.Enabled() {
		return
	}
	events.SubscribeAll(a.dispatcher, a.handleEvent)
}

// ListTicketEvents returns the audit trail of a ticket.
func (a *AuditService) ListTicketEvents(ctx context.Context, number string) ([]domain.TicketEvent, error) {
	if !a.Enabled() {
		return nil, apperrors.NewUnavailable("audit trail not configured")
	}
	return a.repo.ListByTicket(ctx, number)
}

func (a *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	entry, err := auditEntry(event)
	if err != nil {
		return err
	}
	if err := a.repo.Create(ctx, entry); err != nil {
		a.logger.Error("audit write failed",
			zap.String("ticket_number", event.TicketNumber),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return fmt.Errorf("audit %s: %w", event.Type, err)
	}
	return nil
}

func auditEntry(event events.Event) (*domain.TicketEvent, error) {
	payload, err := payloadMap(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode audit payload: %w", err)
	}

	status := domain.TicketStatusWaiting
	switch p := event.Payload.(type) {
	case events.TicketCalledPayload:
		status = domain.TicketStatusInService
	case events.ServiceFinalizedPayload:
		status = p.Status
	}

	return &domain.TicketEvent{
		ID:           event.ID,
		TicketNumber: event.TicketNumber,
		TicketClass:  event.TicketClass,
		EventType:    event.Type.AuditType(),
		Status:       status,
		CounterID:    event.CounterID,
		Payload:      payload,
		OccurredAt:   event.Timestamp,
	}, nil
}

func payloadMap(payload any) (map[string]any, error) {
	out := map[string]any{}
	if payload == nil {
		return out, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
