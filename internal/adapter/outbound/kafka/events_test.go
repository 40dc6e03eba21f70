package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniedit/orderflow/internal/infra/events"
	"github.com/uniedit/orderflow/internal/utils/requestctx"
)

type testEvent struct {
	events.BaseEvent
	Status string `json:"status"`
}

func TestEventForwarder_Handle(t *testing.T) {
	w := &fakeWriter{}
	f := newEventForwarder(w, []string{"OrderTransitioned"}, nil)
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	e := &testEvent{BaseEvent: events.NewBaseEvent("OrderTransitioned", "A-7", at), Status: "canceled"}

	require.NoError(t, f.Handle(context.Background(), e))
	require.NoError(t, f.Close())

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "A-7", string(msg.Key))
	assert.Equal(t, at, msg.Time)
	assert.Equal(t, "OrderTransitioned", string(msg.Headers[0].Value))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "canceled", body["status"])
	assert.Equal(t, "A-7", body["aggregate_id"])
	assert.True(t, w.closed)
}

func TestEventForwarder_RequestIDHeader(t *testing.T) {
	w := &fakeWriter{}
	f := newEventForwarder(w, []string{"OrderTransitioned"}, nil)
	ctx := requestctx.WithRequestID(context.Background(), "req-9")

	require.NoError(t, f.Handle(ctx, events.NewBaseEvent("OrderTransitioned", "A-7", time.Now())))

	require.Len(t, w.msgs, 1)
	headers := map[string]string{}
	for _, h := range w.msgs[0].Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "req-9", headers["request_id"])
	assert.NotEmpty(t, headers["event_id"])
}

func TestEventForwarder_OnBus(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	bus := events.NewBus(nil)
	bus.Register(newEventForwarder(w, []string{"OrderTransitioned"}, nil))

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), events.NewBaseEvent("OrderTransitioned", "A-7", time.Now()))
	})
	assert.Len(t, w.msgs, 1)
}
