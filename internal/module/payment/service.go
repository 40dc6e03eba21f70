package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/port/outbound"
	"go.uber.org/zap"
)

// ErrInvalidRequest is returned for session requests that cannot describe a checkout.
var ErrInvalidRequest = errors.New("invalid session request")

// SessionService opens checkout sessions for pending orders.
type SessionService struct {
	orders  order.Repository
	gateway outbound.PaymentGatewayPort
	logger  *zap.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(orders order.Repository, gateway outbound.PaymentGatewayPort, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		orders:  orders,
		gateway: gateway,
		logger:  logger,
	}
}

// CreateSession returns a result without a session when the order cannot
// be paid, and an error when the gateway call itself failed.
func (s *SessionService) CreateSession(ctx context.Context, req order.CreateSessionRequest) (*order.PaymentSessionResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	o, err := s.orders.GetByNumber(ctx, req.OrderNumber)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return &order.PaymentSessionResult{}, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if !o.IsPending() {
		s.logger.Info("session refused for non-pending order",
			zap.String("order_number", o.Number),
			zap.String("status", o.Status.String()),
		)
		return &order.PaymentSessionResult{}, nil
	}
	if want := o.AmountInMinorUnits(); want != req.AmountInMinorUnits {
		s.logger.Warn("session amount mismatch",
			zap.String("order_number", o.Number),
			zap.Int64("requested", req.AmountInMinorUnits),
			zap.Int64("expected", want),
		)
		return &order.PaymentSessionResult{}, nil
	}

	result, err := s.gateway.CreateSession(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	if !result.HasSession() {
		return &order.PaymentSessionResult{}, nil
	}

	s.logger.Info("checkout session created",
		zap.String("order_number", o.Number),
		zap.String("session_id", result.Session.ID),
	)
	return result, nil
}

func validate(req order.CreateSessionRequest) error {
	if req.OrderNumber == "" {
		return fmt.Errorf("%w: order number is required", ErrInvalidRequest)
	}
	if req.AmountInMinorUnits < 0 {
		return fmt.Errorf("%w: amount cannot be negative", ErrInvalidRequest)
	}
	if req.ProductTitle == "" {
		return fmt.Errorf("%w: product title is required", ErrInvalidRequest)
	}
	return nil
}
