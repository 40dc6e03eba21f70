package events

import "context"

// Handler consumes the event types it lists. Handle runs on the publisher's
// goroutine and must not block on slow I/O.
type Handler interface {
	Handles() []string
	Handle(ctx context.Context, event Event) error
}

type funcHandler struct {
	types []string
	fn    func(context.Context, Event) error
}

// NewHandlerFunc adapts fn to a Handler for types.
func NewHandlerFunc(types []string, fn func(context.Context, Event) error) Handler {
	return &funcHandler{types: types, fn: fn}
}

func (h *funcHandler) Handles() []string { return h.types }

func (h *funcHandler) Handle(ctx context.Context, event Event) error {
	return h.fn(ctx, event)
}
