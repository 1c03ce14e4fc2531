package dto

import (
	"time"

	"github.com/counterdesk/counter-dispatch/internal/domain"
)

// IssueTicketRequest payload.
type IssueTicketRequest struct {
	Class domain.TicketClass `json:"class"`
}

// TicketResponse describes a ticket and its lifecycle stamps.
type TicketResponse struct {
	Number            string              `json:"number"`
	Class             domain.TicketClass  `json:"class"`
	Status            domain.TicketStatus `json:"status"`
	IssuedAt          time.Time           `json:"issued_at"`
	ServiceStartedAt  *time.Time          `json:"service_started_at"`
	ServiceEndedAt    *time.Time          `json:"service_ended_at"`
	SimulatedDuration string              `json:"simulated_duration"`
	EstimatedDuration string              `json:"estimated_duration,omitempty"`
}

// EstimateResponse carries a freshly drawn duration label.
type EstimateResponse struct {
	Number   string `json:"number"`
	Estimate string `json:"estimate"`
}

// TicketEventResponse is one audit trail entry.
type TicketEventResponse struct {
	ID         string                 `json:"id"`
	EventType  domain.TicketEventType `json:"event_type"`
	Status     domain.TicketStatus    `json:"status"`
	CounterID  string                 `json:"counter_id,omitempty"`
	Payload    map[string]any         `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// NewTicketResponse maps a ticket onto its response shape.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		Number:            t.Number,
		Class:             t.Class,
		Status:            t.Status,
		IssuedAt:          t.IssuedAt,
		ServiceStartedAt:  t.ServiceStartedAt,
		ServiceEndedAt:    t.ServiceEndedAt,
		SimulatedDuration: t.SimulatedDuration,
		EstimatedDuration: t.EstimatedDuration,
	}
}
