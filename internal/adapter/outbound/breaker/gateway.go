package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/port/outbound"
	"github.com/uniedit/orderflow/internal/utils/metrics"
	"go.uber.org/zap"
)

// ErrGatewayUnavailable is returned while the breaker is open.
var ErrGatewayUnavailable = outbound.ErrGatewayUnavailable

// Config contains circuit breaker settings.
type Config struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultConfig returns the default breaker configuration.
func DefaultConfig() Config {
	return Config{
		Name:             "payment_gateway",
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// Gateway guards a payment gateway with a circuit breaker. Only transport
// faults count as failures; an answer without a session does not.
type Gateway struct {
	next    outbound.PaymentGatewayPort
	breaker *gobreaker.CircuitBreaker[*order.PaymentSessionResult]
	logger  *zap.Logger
}

// NewGateway wraps next with a circuit breaker.
func NewGateway(next outbound.PaymentGatewayPort, cfg Config, m *metrics.Metrics, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Name == "" {
		cfg.Name = DefaultConfig().Name
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultConfig().FailureThreshold
	}

	threshold := cfg.FailureThreshold
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("payment gateway breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			m.SetBreakerState(name, float64(to))
		},
	}
	m.SetBreakerState(cfg.Name, float64(gobreaker.StateClosed))

	return &Gateway{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[*order.PaymentSessionResult](settings),
		logger:  logger,
	}
}

// CreateSession implements outbound.PaymentGatewayPort.
func (g *Gateway) CreateSession(ctx context.Context, req order.CreateSessionRequest) (*order.PaymentSessionResult, error) {
	result, err := g.breaker.Execute(func() (*order.PaymentSessionResult, error) {
		return g.next.CreateSession(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	return result, err
}

// State returns the current breaker state.
func (g *Gateway) State() gobreaker.State {
	return g.breaker.State()
}

var _ outbound.PaymentGatewayPort = (*Gateway)(nil)
