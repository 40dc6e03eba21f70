package middleware

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/uniedit/orderflow/internal/utils/errors"
	"github.com/uniedit/orderflow/internal/utils/requestctx"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into a 500 envelope. A nil log recovers silently.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestctx.Logger(c.Request.Context(), log).Error("Panic recovered",
					zap.Any("error", r),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				abortWith(c, apperrors.Internal("", nil))
			}
		}()
		c.Next()
	}
}
