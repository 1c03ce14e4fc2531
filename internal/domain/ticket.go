package domain

import "time"

// TicketClass selects the numbering series, dispatch weighting and duration model.
type TicketClass string

const (
	TicketClassPriority TicketClass = "SP"
	TicketClassNormalA  TicketClass = "SE"
	TicketClassNormalB  TicketClass = "SG"
)

// TicketClasses lists every class in display order.
var TicketClasses = []TicketClass{TicketClassPriority, TicketClassNormalA, TicketClassNormalB}

// Valid reports whether c is a known class.
func (c TicketClass) Valid() bool {
	switch c {
	case TicketClassPriority, TicketClassNormalA, TicketClassNormalB:
		return true
	}
	return false
}

// Code returns the two-letter code embedded in ticket numbers.
func (c TicketClass) Code() string {
	return string(c)
}

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusWaiting   TicketStatus = "WAITING"
	TicketStatusInService TicketStatus = "IN_SERVICE"
	TicketStatusCompleted TicketStatus = "COMPLETED"
	TicketStatusAbsent    TicketStatus = "ABSENT"
)

// Terminal reports whether no further transition is allowed.
func (s TicketStatus) Terminal() bool {
	return s == TicketStatusCompleted || s == TicketStatusAbsent
}

// ServiceOutcome is the result recorded when a service is finalized.
type ServiceOutcome string

const (
	OutcomeCompleted ServiceOutcome = "completed"
	OutcomeAbsent    ServiceOutcome = "absent"
)

// Valid reports whether o is a known outcome.
func (o ServiceOutcome) Valid() bool {
	return o == OutcomeCompleted || o == OutcomeAbsent
}

// Status maps the outcome onto the terminal ticket status.
func (o ServiceOutcome) Status() TicketStatus {
	if o == OutcomeAbsent {
		return TicketStatusAbsent
	}
	return TicketStatusCompleted
}

// Ticket is a single service request issued at the counter.
type Ticket struct {
	Number            string
	Class             TicketClass
	IssuedAt          time.Time
	Status            TicketStatus
	ServiceStartedAt  *time.Time
	ServiceEndedAt    *time.Time
	SimulatedDuration string
	EstimatedDuration string
}

// Clone returns a copy that shares no pointers with t.
func (t *Ticket) Clone() Ticket {
	out := *t
	if t.ServiceStartedAt != nil {
		started := *t.ServiceStartedAt
		out.ServiceStartedAt = &started
	}
	if t.ServiceEndedAt != nil {
		ended := *t.ServiceEndedAt
		out.ServiceEndedAt = &ended
	}
	return out
}
