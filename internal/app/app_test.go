package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	ginadapter "github.com/uniedit/orderflow/internal/adapter/inbound/gin"
	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/infra/config"
	"github.com/uniedit/orderflow/internal/utils/metrics"
)

type stubOrders struct{}

func (stubOrders) Get(_ context.Context, number string) (*order.Order, error) {
	if number != "A-1" {
		return nil, order.ErrOrderNotFound
	}
	return &order.Order{ID: 1, Number: "A-1", Total: decimal.NewFromInt(10), Status: order.StatusPending}, nil
}

func (stubOrders) Cancel(_ context.Context, id int64) (*order.TransitionResult, error) {
	return order.Succeeded(&order.Order{ID: id, Number: "A-1", Status: order.StatusCanceled}), nil
}

func (stubOrders) Refund(context.Context, int64) (*order.TransitionResult, error) {
	return order.Rejected("Order not eligible for refund"), nil
}

type stubSessions struct{}

func (stubSessions) CreateSession(context.Context, order.CreateSessionRequest) (*order.PaymentSessionResult, error) {
	return &order.PaymentSessionResult{}, nil
}

func newTestDeps() *Dependencies {
	reg := prometheus.NewRegistry()
	log := zap.NewNop()
	return &Dependencies{
		Config: &config.Config{
			Log:       config.LogConfig{Level: "info"},
			RateLimit: config.RateLimitConfig{Enabled: true, ActionLimit: 10},
		},
		Logger:         log,
		Registry:       reg,
		Metrics:        metrics.NewWithRegistry("orderflow", reg),
		OrderHandler:   ginadapter.NewOrderHandler(stubOrders{}, log),
		PaymentHandler: ginadapter.NewPaymentAdapter(stubSessions{}, log),
	}
}

func do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := NewRouter(newTestDeps())
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		w := do(t, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("order lookup", func(t *testing.T) {
		w := do(t, http.MethodGet, "/api/v1/orders/A-1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"number":"A-1"`)
	})

	t.Run("cancel without redis", func(t *testing.T) {
		w := do(t, http.MethodPost, "/api/v1/orders/1/cancel", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"canceled"`)
	})

	t.Run("refund rejection", func(t *testing.T) {
		w := do(t, http.MethodPost, "/api/v1/orders/1/refund", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Order not eligible for refund")
	})

	t.Run("request id is set", func(t *testing.T) {
		w := do(t, http.MethodGet, "/health", "")
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestRouter_Metrics(t *testing.T) {
	deps := newTestDeps()
	r := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/A-1", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "orderflow_http_requests_total")
	assert.Contains(t, w.Body.String(), `path="/api/v1/orders/:ref"`)
}
