package events

import (
	"time"

	"github.com/counterdesk/counter-dispatch/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketIssued     EventType = "ticket_issued"
	EventTicketCalled     EventType = "ticket_called"
	EventServiceFinalized EventType = "service_finalized"
)

// Event represents a lifecycle event emitted by the counter service.
type Event struct {
	ID           string             `json:"id"`
	Type         EventType          `json:"type"`
	TicketNumber string             `json:"ticket_number"`
	TicketClass  domain.TicketClass `json:"ticket_class"`
	CounterID    string             `json:"counter_id"`
	Timestamp    time.Time          `json:"timestamp"`
	Payload      interface{}        `json:"payload"`
}

// TicketIssuedPayload payload.
type TicketIssuedPayload struct {
	SimulatedDuration string    `json:"simulated_duration"`
	IssuedAt          time.Time `json:"issued_at"`
}

// TicketCalledPayload payload.
type TicketCalledPayload struct {
	ServiceStartedAt time.Time `json:"service_started_at"`
	RecentCalls      []string  `json:"recent_calls"`
}

// ServiceFinalizedPayload payload.
type ServiceFinalizedPayload struct {
	Outcome           domain.ServiceOutcome `json:"outcome"`
	Status            domain.TicketStatus   `json:"status"`
	EstimatedDuration string                `json:"estimated_duration"`
	ServiceEndedAt    time.Time             `json:"service_ended_at"`
}

// AuditType maps the event onto the persisted audit entry kind.
func (t EventType) AuditType() domain.TicketEventType {
	switch t {
	case EventTicketCalled:
		return domain.TicketEventCalled
	case EventServiceFinalized:
		return domain.TicketEventFinalized
	default:
		return domain.TicketEventIssued
	}
}
