package orderaction

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/port/outbound"
)

// ===== Mock Implementations =====

type MockConfirmation struct {
	mock.Mock
}

func (m *MockConfirmation) Ask(ctx context.Context, prompt outbound.Prompt) (outbound.Answer, error) {
	args := m.Called(ctx, prompt)
	return args.Get(0).(outbound.Answer), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, message string, severity outbound.Severity) {
	m.Called(ctx, message, severity)
}

type MockTransitionBackend struct {
	mock.Mock
}

func (m *MockTransitionBackend) Cancel(ctx context.Context, req order.CancelRequest) (*order.TransitionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.TransitionResult), args.Error(1)
}

func (m *MockTransitionBackend) Refund(ctx context.Context, req order.RefundRequest) (*order.TransitionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.TransitionResult), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateSession(ctx context.Context, req order.CreateSessionRequest) (*order.PaymentSessionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.PaymentSessionResult), args.Error(1)
}

type MockHandoff struct {
	mock.Mock
}

func (m *MockHandoff) Launch(ctx context.Context, publicKey string, session order.PaymentSession) {
	m.Called(ctx, publicKey, session)
}

// ===== Fixtures =====

func pendingOrder() *order.Order {
	return &order.Order{
		ID:      7,
		Number:  "A-7",
		Total:   decimal.RequireFromString("19.995"),
		Product: order.Product{Title: "Pro plan", Description: "Yearly"},
		Status:  order.StatusPending,
	}
}

func paidOrder() *order.Order {
	return &order.Order{
		ID:      42,
		Number:  "B-42",
		Total:   decimal.RequireFromString("10.00"),
		Product: order.Product{Title: "Starter", Description: "Monthly"},
		Status:  order.StatusPaid,
	}
}
