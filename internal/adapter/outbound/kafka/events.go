package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/uniedit/orderflow/internal/infra/events"
	"github.com/uniedit/orderflow/internal/utils/requestctx"
	"go.uber.org/zap"
)

// EventForwarder is an events.Handler that forwards domain events to a
// topic, keyed by aggregate so one order's events stay in order.
type EventForwarder struct {
	writer     messageWriter
	eventTypes []string
	logger     *zap.Logger
}

// NewEventForwarder creates a forwarder for the given event types. The
// writer runs in async mode; delivery failures are logged, not returned.
func NewEventForwarder(brokers []string, topic string, eventTypes []string, logger *zap.Logger) *EventForwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				logger.Warn("forward events", zap.Int("count", len(msgs)), zap.Error(err))
			}
		},
	}
	return newEventForwarder(w, eventTypes, logger)
}

func newEventForwarder(w messageWriter, eventTypes []string, logger *zap.Logger) *EventForwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventForwarder{writer: w, eventTypes: eventTypes, logger: logger}
}

// Handles implements events.Handler.
func (f *EventForwarder) Handles() []string {
	return f.eventTypes
}

// Handle implements events.Handler.
func (f *EventForwarder) Handle(ctx context.Context, event events.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.EventType(), err)
	}

	headers := []kafka.Header{
		{Key: "event_type", Value: []byte(event.EventType())},
		{Key: "event_id", Value: []byte(event.EventID().String())},
	}
	if id := requestctx.RequestID(ctx); id != "" {
		headers = append(headers, kafka.Header{Key: "request_id", Value: []byte(id)})
	}

	return f.writer.WriteMessages(context.WithoutCancel(ctx), kafka.Message{
		Key:     []byte(event.AggregateID()),
		Value:   value,
		Time:    event.OccurredAt(),
		Headers: headers,
	})
}

// Close flushes pending messages and closes the writer.
func (f *EventForwarder) Close() error {
	return f.writer.Close()
}

var _ events.Handler = (*EventForwarder)(nil)
