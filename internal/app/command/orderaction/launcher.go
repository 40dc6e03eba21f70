package orderaction

import (
	"context"
	"errors"
	"time"

	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/port/outbound"
	"github.com/uniedit/orderflow/internal/utils/metrics"
	"go.uber.org/zap"
)

// FailureReason says why no checkout session could be started. It is for
// logs and metrics only; the user sees the same message for every reason.
type FailureReason string

const (
	FailureNone         FailureReason = ""
	FailureNoSession    FailureReason = "no_session"
	FailureGatewayFault FailureReason = "gateway_fault"
)

// SessionAttempt is the normalized result of asking the gateway for a
// session: either a session, or a failure reason.
type SessionAttempt struct {
	Session *order.PaymentSession
	Failure FailureReason
	Err     error
}

// Ok reports whether a session is available.
func (a SessionAttempt) Ok() bool {
	return a.Failure == FailureNone && a.Session != nil
}

var errNoSession = errors.New("gateway returned no session")

// attemptSession folds an empty result and a returned error into one type.
func attemptSession(ctx context.Context, gateway outbound.PaymentGatewayPort, req order.CreateSessionRequest) SessionAttempt {
	result, err := gateway.CreateSession(ctx, req)
	if err != nil {
		return SessionAttempt{Failure: FailureGatewayFault, Err: err}
	}
	if !result.HasSession() {
		return SessionAttempt{Failure: FailureNoSession, Err: errNoSession}
	}
	return SessionAttempt{Session: result.Session}
}

// Launcher starts payment for an order by creating a checkout session and
// handing it to the provider's hosted page.
//
// The launcher never marks an order paid. Its terminal states are a
// launched session or a reported failure.
type Launcher struct {
	gateway   outbound.PaymentGatewayPort
	handoff   outbound.CheckoutHandoffPort
	publicKey string
	reporter  *Reporter
	locks     *OrderLocks
	messages  Messages
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// LauncherConfig holds the launcher's collaborators.
type LauncherConfig struct {
	Gateway   outbound.PaymentGatewayPort
	Handoff   outbound.CheckoutHandoffPort
	PublicKey string
	Reporter  *Reporter
	Locks     *OrderLocks // nil creates a private lock set
	Messages  Messages
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// NewLauncher creates a new payment session launcher.
func NewLauncher(cfg LauncherConfig) *Launcher {
	if cfg.Locks == nil {
		cfg.Locks = NewOrderLocks()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Launcher{
		gateway:   cfg.Gateway,
		handoff:   cfg.Handoff,
		publicKey: cfg.PublicKey,
		reporter:  cfg.Reporter,
		locks:     cfg.Locks,
		messages:  cfg.Messages.withDefaults(),
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
	}
}

// Pay creates a checkout session for o and hands it off. It runs without
// confirmation and does not wait for the payment itself.
func (l *Launcher) Pay(ctx context.Context, o *order.Order) (outcome Outcome) {
	scope := l.reporter.begin(order.ActionPay, o)
	defer func() { outcome = scope.finish(ctx, recover()) }()

	if err := o.Validate(); err != nil {
		scope.logger.Error("refusing payment on invalid order", zap.Error(err))
		scope.report(ctx, OutcomeUnavailable, l.messages.PaymentFailed, outbound.SeverityError)
		return
	}

	release, err := l.locks.Acquire(ctx, o.ID)
	if err != nil {
		scope.logger.Warn("gave up waiting for order lock", zap.Error(err))
		scope.report(ctx, OutcomeUnavailable, l.messages.PaymentFailed, outbound.SeverityError)
		return
	}
	defer release()

	req := order.NewCreateSessionRequest(o)

	start := time.Now()
	attempt := attemptSession(ctx, l.gateway, req)
	l.metrics.RecordBackendCall("create_session", time.Since(start))

	if !attempt.Ok() {
		scope.logger.Warn("payment session not started",
			zap.String("failure", string(attempt.Failure)),
			zap.Int64("amount", req.AmountInMinorUnits),
			zap.Error(attempt.Err),
		)
		scope.report(ctx, OutcomeUnavailable, l.messages.PaymentFailed, outbound.SeverityError)
		return
	}

	l.handoff.Launch(ctx, l.publicKey, *attempt.Session)
	scope.resolve(OutcomeLaunched)
	scope.logger.Info("checkout handed off", zap.String("session_id", attempt.Session.ID))
	return
}
