package middleware

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/orderflow/internal/port/outbound"
	apperrors "github.com/uniedit/orderflow/internal/utils/errors"
	"go.uber.org/zap"
)

const (
	RateLimitLimit     = "X-RateLimit-Limit"
	RateLimitRemaining = "X-RateLimit-Remaining"
	RateLimitReset     = "X-RateLimit-Reset"
	RetryAfter         = "Retry-After"
)

// ActionRateLimit limits state-changing requests per route, order reference
// and client. Limiter failures let the request through.
func ActionRateLimit(limiter outbound.RateLimiterPort, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := actionKey(c)
		decision, err := limiter.Take(c.Request.Context(), key, limit, window)
		if err != nil {
			log.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		c.Header(RateLimitLimit, strconv.Itoa(decision.Limit))
		c.Header(RateLimitRemaining, strconv.Itoa(decision.Remaining))
		c.Header(RateLimitReset, strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			wait := time.Until(decision.ResetAt)
			if wait <= 0 {
				wait = window
			}
			c.Header(RetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			abortWith(c, apperrors.RateLimited("Too many requests, please try again later"))
			return
		}
		c.Next()
	}
}

func actionKey(c *gin.Context) string {
	return fmt.Sprintf("%s:%s:%s:%s", c.Request.Method, c.FullPath(), c.Param("ref"), c.ClientIP())
}
