package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/port/inbound"
	"go.uber.org/zap"
)

// orderHandler implements inbound.OrderHttpPort.
type orderHandler struct {
	service inbound.OrderTransitionService
	logger  *zap.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(service inbound.OrderTransitionService, logger *zap.Logger) inbound.OrderHttpPort {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orderHandler{service: service, logger: logger}
}

// RegisterOrderRoutes registers order routes. Extra handlers run before the
// action routes only.
func RegisterOrderRoutes(r *gin.RouterGroup, h inbound.OrderHttpPort, action ...gin.HandlerFunc) {
	orders := r.Group("/orders")
	{
		orders.GET("/:ref", h.GetOrder)
		orders.POST("/:ref/cancel", withAction(action, h.CancelOrder)...)
		orders.POST("/:ref/refund", withAction(action, h.RefundOrder)...)
	}
}

func (h *orderHandler) GetOrder(c *gin.Context) {
	o, err := h.service.Get(c.Request.Context(), c.Param("ref"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, o)
}

func (h *orderHandler) CancelOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), id)
	h.respondTransition(c, order.ActionCancel, id, result, err)
}

func (h *orderHandler) RefundOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	result, err := h.service.Refund(c.Request.Context(), id)
	h.respondTransition(c, order.ActionRefund, id, result, err)
}

func (h *orderHandler) respondTransition(c *gin.Context, action order.Action, id int64, result *order.TransitionResult, err error) {
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	if !result.Valid() {
		handleError(c, h.logger, order.ErrInvalidResult)
		return
	}
	if !result.Success {
		h.logger.Info("transition rejected",
			zap.String("action", action.String()),
			zap.Int64("order_id", id),
			zap.String("message", result.Message),
		)
		respondRejection(c, result.Message)
		return
	}

	respondData(c, http.StatusOK, result.Order)
}
