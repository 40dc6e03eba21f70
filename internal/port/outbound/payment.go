package outbound

import (
	"context"
	"errors"

	"github.com/uniedit/orderflow/internal/domain/order"
)

// ErrGatewayUnavailable is returned when the gateway is not accepting calls.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// PaymentGatewayPort creates checkout sessions with the payment provider.
type PaymentGatewayPort interface {
	// CreateSession returns a result without a session when the gateway
	// declined, and an error when the call itself failed.
	CreateSession(ctx context.Context, req order.CreateSessionRequest) (*order.PaymentSessionResult, error)
}

// CheckoutHandoffPort transfers the user to the provider's hosted checkout.
//
// Launch is fire-and-forget: it returns nothing and its return says nothing
// about whether the user paid. Payment is confirmed out of band.
type CheckoutHandoffPort interface {
	Launch(ctx context.Context, publicKey string, session order.PaymentSession)
}
