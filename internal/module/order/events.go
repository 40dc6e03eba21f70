package order

import (
	"time"

	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/infra/events"
)

// OrderTransitionedType is the event type of OrderTransitioned.
const OrderTransitionedType = "OrderTransitioned"

// OrderTransitioned is published after the backend persisted a transition.
// Events are keyed by order number.
type OrderTransitioned struct {
	events.BaseEvent

	OrderID int64        `json:"order_id"`
	Number  string       `json:"number"`
	Action  order.Action `json:"action"`
	From    order.Status `json:"from"`
	To      order.Status `json:"to"`
}

// NewOrderTransitioned creates the event for a persisted transition.
func NewOrderTransitioned(action order.Action, from order.Status, o *order.Order, at time.Time) *OrderTransitioned {
	return &OrderTransitioned{
		BaseEvent: events.NewBaseEvent(OrderTransitionedType, o.Number, at),
		OrderID:   o.ID,
		Number:    o.Number,
		Action:    action,
		From:      from,
		To:        o.Status,
	}
}
