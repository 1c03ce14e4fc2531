package domain

import "time"

// TicketEventType captures which lifecycle step an audit entry records.
type TicketEventType string

const (
	TicketEventIssued    TicketEventType = "ISSUED"
	TicketEventCalled    TicketEventType = "CALLED"
	TicketEventFinalized TicketEventType = "FINALIZED"
)

// TicketEvent is an immutable audit trail entry for a ticket.
type TicketEvent struct {
	ID           string
	TicketNumber string
	TicketClass  TicketClass
	EventType    TicketEventType
	Status       TicketStatus
	CounterID    string
	Payload      map[string]any
	OccurredAt   time.Time
	CreatedAt    time.Time
}
