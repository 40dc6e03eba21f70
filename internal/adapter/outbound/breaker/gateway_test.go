package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/utils/metrics"
	"go.uber.org/zap"
)

type stubGateway struct {
	calls  int
	result *order.PaymentSessionResult
	err    error
}

func (s *stubGateway) CreateSession(context.Context, order.CreateSessionRequest) (*order.PaymentSessionResult, error) {
	s.calls++
	return s.result, s.err
}

func testConfig() Config {
	return Config{
		Name:             "stripe",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 2,
	}
}

func TestGateway_OpensAfterConsecutiveFaults(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	next := &stubGateway{err: errors.New("connection reset")}
	g := NewGateway(next, testConfig(), m, zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err := g.CreateSession(context.Background(), order.CreateSessionRequest{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrGatewayUnavailable)
	}

	_, err := g.CreateSession(context.Background(), order.CreateSessionRequest{})
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.Equal(t, 2, next.calls)
	assert.Equal(t, gobreaker.StateOpen, g.State())
	assert.Equal(t, float64(gobreaker.StateOpen), testutil.ToFloat64(m.GatewayBreakerState.WithLabelValues("stripe")))
}

func TestGateway_EmptyResultIsNotAFault(t *testing.T) {
	next := &stubGateway{result: &order.PaymentSessionResult{}}
	g := NewGateway(next, testConfig(), nil, nil)

	for i := 0; i < 5; i++ {
		result, err := g.CreateSession(context.Background(), order.CreateSessionRequest{})
		require.NoError(t, err)
		assert.False(t, result.HasSession())
	}
	assert.Equal(t, gobreaker.StateClosed, g.State())
}

func TestGateway_PassesSessionThrough(t *testing.T) {
	session := &order.PaymentSession{ID: "cs_1"}
	g := NewGateway(&stubGateway{result: &order.PaymentSessionResult{Session: session}}, DefaultConfig(), nil, nil)

	result, err := g.CreateSession(context.Background(), order.CreateSessionRequest{})
	require.NoError(t, err)
	assert.Same(t, session, result.Session)
}
