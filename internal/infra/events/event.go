// Package events is an in-process domain event bus. Handlers run on the
// publisher's goroutine after the state change they describe is persisted.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a fact about an aggregate. Events of one aggregate share
// AggregateID so downstream consumers can keep them in order.
type Event interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
}

// BaseEvent carries the envelope fields. Domain events embed it.
type BaseEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Aggregate string    `json:"aggregate_id"`
}

func (e BaseEvent) EventID() uuid.UUID    { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }

// NewBaseEvent stamps a fresh event ID on an event of eventType for aggregateID.
func NewBaseEvent(eventType, aggregateID string, at time.Time) BaseEvent {
	return BaseEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: at,
		Aggregate: aggregateID,
	}
}
