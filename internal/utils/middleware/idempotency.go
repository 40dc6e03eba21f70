package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/orderflow/internal/port/outbound"
	apperrors "github.com/uniedit/orderflow/internal/utils/errors"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the header carrying the client's idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayHeader marks a response served from the replay store.
	IdempotentReplayHeader = "Idempotent-Replayed"

	defaultIdempotencyTTL  = 24 * time.Hour
	defaultIdempotencyHold = 30 * time.Second
	maxIdempotencyKeyLen   = 255
)

// IdempotencyConfig holds idempotency middleware configuration.
type IdempotencyConfig struct {
	// TTL is how long a completed response is replayed.
	TTL time.Duration
	// Hold bounds how long an in-flight request keeps its key reserved.
	Hold time.Duration
}

// DefaultIdempotencyConfig returns the default idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:  defaultIdempotencyTTL,
		Hold: defaultIdempotencyHold,
	}
}

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a cancel, refund or session
// request is retried with the same Idempotency-Key. A nil store disables it.
func Idempotency(store outbound.ReplayStorePort, cfg IdempotencyConfig, log *zap.Logger) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultIdempotencyTTL
	}
	if cfg.Hold <= 0 {
		cfg.Hold = defaultIdempotencyHold
	}
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		clientKey := c.GetHeader(IdempotencyKeyHeader)
		if store == nil || clientKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if len(clientKey) > maxIdempotencyKeyLen {
			abortWith(c, apperrors.BadRequest("Idempotency-Key is too long"))
			return
		}

		ctx := c.Request.Context()
		key := replayKey(c, clientKey)

		stored, err := store.Load(ctx, key)
		if err != nil {
			log.Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}
		if stored != nil {
			c.Header(IdempotentReplayHeader, "true")
			c.Data(stored.StatusCode, stored.ContentType, stored.Body)
			c.Abort()
			return
		}

		reserved, err := store.Reserve(ctx, key, cfg.Hold)
		if err != nil {
			log.Warn("idempotency reserve failed", zap.Error(err))
			c.Next()
			return
		}
		if !reserved {
			abortWith(c, apperrors.Conflict("A request with this Idempotency-Key is still in progress"))
			return
		}
		// Settle the key even when the client has gone away.
		settle := context.WithoutCancel(ctx)
		defer func() {
			if err := store.Release(settle, key); err != nil {
				log.Warn("idempotency release failed", zap.Error(err))
			}
		}()

		w := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if !replayable(w.Status()) {
			return
		}
		resp := &outbound.StoredResponse{
			StatusCode:  w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		}
		if err := store.Save(settle, key, resp, cfg.TTL); err != nil {
			log.Warn("idempotency save failed", zap.Error(err))
		}
	}
}

// replayable reports whether a response settles the request. Faults and
// retryable refusals are left for the client to try again.
func replayable(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusConflict, http.StatusTooManyRequests:
		return false
	}
	return status >= 200 && status < 500
}

// replayKey scopes the client key to the route, its parameters and a hash of
// the body so a reused key with a different payload never replays.
func replayKey(c *gin.Context, clientKey string) string {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	h := sha256.New()
	h.Write([]byte(c.Request.Method))
	h.Write([]byte{0})
	h.Write([]byte(c.Request.URL.Path))
	h.Write([]byte{0})
	h.Write([]byte(clientKey))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func abortWith(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.StatusCode, err.ToResponse())
}
