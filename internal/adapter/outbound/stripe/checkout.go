package stripe

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/port/outbound"
	"go.uber.org/zap"
)

// Config holds Stripe checkout configuration.
type Config struct {
	SecretKey  string
	Currency   string
	SuccessURL string
	CancelURL  string
	// BaseURL overrides the API endpoint. Empty uses api.stripe.com.
	BaseURL    string
	HTTPClient *http.Client
}

// CheckoutGateway creates hosted checkout sessions through Stripe.
type CheckoutGateway struct {
	client   session.Client
	currency string
	success  string
	cancel   string
	logger   *zap.Logger
}

// NewCheckoutGateway creates a Stripe checkout gateway.
func NewCheckoutGateway(cfg Config, logger *zap.Logger) *CheckoutGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Currency == "" {
		cfg.Currency = string(stripe.CurrencyUSD)
	}

	backendCfg := &stripe.BackendConfig{
		HTTPClient:        cfg.HTTPClient,
		MaxNetworkRetries: stripe.Int64(0),
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}

	return &CheckoutGateway{
		client: session.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
		currency: cfg.Currency,
		success:  cfg.SuccessURL,
		cancel:   cfg.CancelURL,
		logger:   logger,
	}
}

// CreateSession implements outbound.PaymentGatewayPort.
func (g *CheckoutGateway) CreateSession(ctx context.Context, req order.CreateSessionRequest) (*order.PaymentSessionResult, error) {
	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(req.ProductTitle),
	}
	if req.ProductDescription != "" {
		product.Description = stripe.String(req.ProductDescription)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(req.OrderNumber),
		SuccessURL:        stripe.String(g.success),
		CancelURL:         stripe.String(g.cancel),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(g.currency),
					UnitAmount:  stripe.Int64(req.AmountInMinorUnits),
					ProductData: product,
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("order_number", req.OrderNumber)
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	s, err := g.client.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	if s == nil || s.ID == "" {
		g.logger.Warn("stripe returned no checkout session", zap.String("order_number", req.OrderNumber))
		return &order.PaymentSessionResult{}, nil
	}

	g.logger.Debug("checkout session created",
		zap.String("order_number", req.OrderNumber),
		zap.String("session_id", s.ID),
	)
	return &order.PaymentSessionResult{
		Session: &order.PaymentSession{ID: s.ID, URL: s.URL},
	}, nil
}

var _ outbound.PaymentGatewayPort = (*CheckoutGateway)(nil)
