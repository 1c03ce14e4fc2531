package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/counterdesk/counter-dispatch/internal/events"
)

// MessageWriter is the subset of *kafka.Writer the sink relies on.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSinkConfig contains configurable parameters for the Kafka sink.
type KafkaSinkConfig struct {
	Brokers      []string
	Topic        string
	MaxAttempts  int
	WriteTimeout time.Duration
}

// KafkaSink streams lifecycle events keyed by ticket number, so every event
// of one ticket lands on the same partition.
type KafkaSink struct {
	writer      MessageWriter
	maxAttempts int
	backoff     time.Duration
}

// NewKafkaSink constructs a sink backed by a kafka.Writer.
func NewKafkaSink(cfg KafkaSinkConfig) (*KafkaSink, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic required")
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequireOne,
	}
	return NewKafkaSinkWithWriter(w, cfg.MaxAttempts), nil
}

// NewKafkaSinkWithWriter wraps an existing writer.
func NewKafkaSinkWithWriter(w MessageWriter, maxAttempts int) *KafkaSink {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &KafkaSink{writer: w, maxAttempts: maxAttempts, backoff: 100 * time.Millisecond}
}

// Name identifies the sink in logs.
func (k *KafkaSink) Name() string {
	return "kafka"
}

// Deliver writes event as JSON, retrying transient failures.
func (k *KafkaSink) Deliver(ctx context.Context, event events.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.TicketNumber),
		Value: value,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= k.maxAttempts; attempt++ {
		if lastErr = k.writer.WriteMessages(ctx, msg); lastErr == nil {
			return nil
		}
		if attempt == k.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(k.backoff * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("kafka write after %d attempts: %w", k.maxAttempts, lastErr)
}

// Close flushes and closes the writer.
func (k *KafkaSink) Close() error {
	return k.writer.Close()
}
