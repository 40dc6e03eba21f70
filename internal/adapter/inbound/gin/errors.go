package gin

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/module/payment"
	"github.com/uniedit/orderflow/internal/port/outbound"
	apperrors "github.com/uniedit/orderflow/internal/utils/errors"
	"github.com/uniedit/orderflow/internal/utils/requestctx"
	"go.uber.org/zap"
)

// handleError maps service errors to HTTP responses. Anything unrecognized
// is a 500 whose body carries no detail of the cause.
func handleError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &appErr):
	case errors.Is(err, order.ErrOrderNotFound):
		appErr = apperrors.NotFound("Order not found")
	case errors.Is(err, payment.ErrInvalidRequest):
		appErr = apperrors.BadRequest("invalid session request")
	case errors.Is(err, outbound.ErrGatewayUnavailable):
		appErr = apperrors.ServiceUnavailable("payment gateway unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		appErr = apperrors.Timeout("")
	default:
		appErr = apperrors.Internal("", err)
	}

	if appErr.StatusCode >= 500 {
		requestctx.Logger(c.Request.Context(), logger).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
	}

	c.JSON(appErr.StatusCode, appErr.ToResponse())
}
