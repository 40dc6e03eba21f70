package inbound

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/orderflow/internal/domain/order"
)

// OrderTransitionService decides order state changes on the backend.
type OrderTransitionService interface {
	Get(ctx context.Context, number string) (*order.Order, error)
	Cancel(ctx context.Context, id int64) (*order.TransitionResult, error)
	Refund(ctx context.Context, id int64) (*order.TransitionResult, error)
}

// OrderHttpPort defines HTTP handler interface for order operations.
type OrderHttpPort interface {
	// GetOrder handles GET /orders/:ref
	GetOrder(c *gin.Context)

	// CancelOrder handles POST /orders/:ref/cancel
	CancelOrder(c *gin.Context)

	// RefundOrder handles POST /orders/:ref/refund
	RefundOrder(c *gin.Context)
}
