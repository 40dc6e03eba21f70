package outbound

import (
	"context"

	"github.com/uniedit/orderflow/internal/domain/order"
)

// OrderTransitionPort is the backend authority for order state changes.
// Each call is made at most once per user confirmation; callers do not retry.
type OrderTransitionPort interface {
	// Cancel asks the backend to cancel an order. A returned error means the
	// call did not complete; a rejection is a result with Success false.
	Cancel(ctx context.Context, req order.CancelRequest) (*order.TransitionResult, error)

	// Refund asks the backend to refund an order.
	Refund(ctx context.Context, req order.RefundRequest) (*order.TransitionResult, error)
}

// OrderReaderPort fetches the current snapshot an owning view displays.
type OrderReaderPort interface {
	GetOrder(ctx context.Context, number string) (*order.Order, error)
}
