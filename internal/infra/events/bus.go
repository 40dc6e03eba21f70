package events

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Bus dispatches domain events to registered handlers synchronously, in
// registration order. A failing or panicking handler is logged and does not
// stop the others or reach the publisher.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

// NewBus creates a new event bus.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Register registers a handler for the events it handles.
func (b *Bus) Register(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range handler.Handles() {
		b.handlers[eventType] = append(b.handlers[eventType], handler)
	}
}

// Publish dispatches an event to all handlers registered for its type.
// A nil bus drops the event.
func (b *Bus) Publish(ctx context.Context, event Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	handlers := b.handlers[event.EventType()]
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := b.dispatch(ctx, handler, event); err != nil {
			b.logger.Error("event handler failed",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.String("aggregate_id", event.AggregateID()),
				zap.Error(err),
			)
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, handler Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler.Handle(ctx, event)
}
