package inbound

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/orderflow/internal/domain/order"
)

// PaymentSessionService opens checkout sessions for pending orders.
type PaymentSessionService interface {
	CreateSession(ctx context.Context, req order.CreateSessionRequest) (*order.PaymentSessionResult, error)
}

// PaymentHttpPort defines HTTP handler interface for payment operations.
type PaymentHttpPort interface {
	// CreateSession handles POST /payments/sessions
	CreateSession(c *gin.Context)
}
