package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/port/inbound"
	"github.com/uniedit/orderflow/internal/utils/middleware"
	"go.uber.org/zap"
)

// MsgNoSession is returned when no checkout could be opened for an order.
const MsgNoSession = "Payment session unavailable"

// paymentAdapter implements inbound.PaymentHttpPort.
type paymentAdapter struct {
	service inbound.PaymentSessionService
	logger  *zap.Logger
}

// NewPaymentAdapter creates a new payment HTTP adapter.
func NewPaymentAdapter(service inbound.PaymentSessionService, logger *zap.Logger) inbound.PaymentHttpPort {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &paymentAdapter{service: service, logger: logger}
}

// RegisterPaymentRoutes registers payment routes.
func RegisterPaymentRoutes(r *gin.RouterGroup, a inbound.PaymentHttpPort, action ...gin.HandlerFunc) {
	payments := r.Group("/payments")
	{
		payments.POST("/sessions", withAction(action, a.CreateSession)...)
	}
}

func (a *paymentAdapter) CreateSession(c *gin.Context) {
	var req order.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.IdempotencyKey = c.GetHeader(middleware.IdempotencyKeyHeader)

	result, err := a.service.CreateSession(c.Request.Context(), req)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	if !result.HasSession() {
		respondRejection(c, MsgNoSession)
		return
	}

	respondData(c, http.StatusCreated, result.Session)
}
