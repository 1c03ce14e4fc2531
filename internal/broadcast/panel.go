package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/counterdesk/counter-dispatch/internal/api/dto"
	"github.com/counterdesk/counter-dispatch/internal/domain"
	"github.com/counterdesk/counter-dispatch/internal/events"
)

// PanelSource provides the current display board view.
type PanelSource interface {
	Panel() domain.Panel
}

// PanelMessage is published on the panel channel after every lifecycle event.
type PanelMessage struct {
	Event        events.EventType  `json:"event"`
	TicketNumber string            `json:"ticket_number"`
	Panel        dto.PanelResponse `json:"panel"`
}

// PanelPublisher pushes panel snapshots to display boards over Redis pub/sub.
type PanelPublisher struct {
	client  redis.Cmdable
	channel string
	source  PanelSource
}

// NewPanelPublisher builds a publisher for channel.
func NewPanelPublisher(client redis.Cmdable, channel string, source PanelSource) *PanelPublisher {
	return &PanelPublisher{client: client, channel: channel, source: source}
}

// Name identifies the sink in logs.
func (p *PanelPublisher) Name() string {
	return "redis_panel"
}

// Deliver publishes the panel as it stands after event.
func (p *PanelPublisher) Deliver(ctx context.Context, event events.Event) error {
	msg := PanelMessage{
		Event:        event.Type,
		TicketNumber: event.TicketNumber,
		Panel:        dto.NewPanelResponse(p.source.Panel()),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode panel: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish panel: %w", err)
	}
	return nil
}
