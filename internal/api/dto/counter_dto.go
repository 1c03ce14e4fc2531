package dto

import "github.com/counterdesk/counter-dispatch/internal/domain"

// FinalizeRequest payload.
type FinalizeRequest struct {
	Outcome domain.ServiceOutcome `json:"outcome"`
}

// QueueCounts lists waiting tickets per class.
type QueueCounts struct {
	Priority int `json:"SP"`
	NormalA  int `json:"SE"`
	NormalB  int `json:"SG"`
}

// PanelResponse is the display board view.
type PanelResponse struct {
	CurrentNumber string          `json:"current_number"`
	CounterID     string          `json:"counter_id"`
	RecentCalls   []string        `json:"recent_calls"`
	StatusMessage string          `json:"status_message"`
	NextTurn      string          `json:"next_turn"`
	Queue         QueueCounts     `json:"queue"`
	Serving       *TicketResponse `json:"serving"`
}

// StatsResponse aggregates the ticket log.
type StatsResponse struct {
	IssuedTotal            int `json:"issued_total"`
	CompletedTotal         int `json:"completed_total"`
	PriorityIssuedTotal    int `json:"priority_issued_total"`
	PriorityCompletedTotal int `json:"priority_completed_total"`
}

// NewQueueCounts maps per-class counts.
func NewQueueCounts(counts map[domain.TicketClass]int) QueueCounts {
	return QueueCounts{
		Priority: counts[domain.TicketClassPriority],
		NormalA:  counts[domain.TicketClassNormalA],
		NormalB:  counts[domain.TicketClassNormalB],
	}
}

// NewPanelResponse maps a panel snapshot.
func NewPanelResponse(p domain.Panel) PanelResponse {
	recent := p.RecentCalls
	if recent == nil {
		recent = []string{}
	}
	resp := PanelResponse{
		CurrentNumber: p.CurrentNumber,
		CounterID:     p.CounterID,
		RecentCalls:   recent,
		StatusMessage: p.StatusMessage,
		NextTurn:      p.NextTurn,
		Queue:         NewQueueCounts(p.QueueCounts),
	}
	if p.Serving != nil {
		serving := NewTicketResponse(p.Serving)
		resp.Serving = &serving
	}
	return resp
}

// NewStatsResponse maps aggregate statistics.
func NewStatsResponse(s domain.Stats) StatsResponse {
	return StatsResponse{
		IssuedTotal:            s.IssuedTotal,
		CompletedTotal:         s.CompletedTotal,
		PriorityIssuedTotal:    s.PriorityIssuedTotal,
		PriorityCompletedTotal: s.PriorityCompletedTotal,
	}
}
