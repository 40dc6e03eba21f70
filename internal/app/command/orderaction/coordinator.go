package orderaction

import (
	"context"
	"time"

	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/port/outbound"
	"github.com/uniedit/orderflow/internal/utils/metrics"
	"go.uber.org/zap"
)

// OrderUpdatedFunc receives the snapshot the backend returned after a
// successful transition. The owning view replaces its order with it.
type OrderUpdatedFunc func(*order.Order)

// Coordinator drives cancel and refund through the backend.
//
// It never decides the next state itself. Whether a transition is legal is
// the backend's call, and the only way a new state reaches the view is the
// snapshot the backend returned.
type Coordinator struct {
	backend   outbound.OrderTransitionPort
	gate      *ConfirmationGate
	reporter  *Reporter
	locks     *OrderLocks
	onUpdated OrderUpdatedFunc
	messages  Messages
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// CoordinatorConfig holds the coordinator's collaborators.
type CoordinatorConfig struct {
	Backend   outbound.OrderTransitionPort
	Gate      *ConfirmationGate
	Reporter  *Reporter
	Locks     *OrderLocks // nil creates a private lock set
	OnUpdated OrderUpdatedFunc
	Messages  Messages
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// NewCoordinator creates a new transition coordinator.
func NewCoordinator(cfg CoordinatorConfig) *Coordinator {
	if cfg.Locks == nil {
		cfg.Locks = NewOrderLocks()
	}
	if cfg.OnUpdated == nil {
		cfg.OnUpdated = func(*order.Order) {}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Coordinator{
		backend:   cfg.Backend,
		gate:      cfg.Gate,
		reporter:  cfg.Reporter,
		locks:     cfg.Locks,
		onUpdated: cfg.OnUpdated,
		messages:  cfg.Messages.withDefaults(),
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
	}
}

// transition describes one gated backend transition.
type transition struct {
	action  order.Action
	prompt  outbound.Prompt
	failed  string
	success string
	call    func(ctx context.Context) (*order.TransitionResult, error)
}

// Cancel asks for confirmation and then asks the backend to cancel o.
func (c *Coordinator) Cancel(ctx context.Context, o *order.Order) Outcome {
	return c.run(ctx, o, transition{
		action:  order.ActionCancel,
		prompt:  c.messages.CancelPrompt,
		failed:  c.messages.CancelFailed,
		success: c.messages.Canceled,
		call: func(ctx context.Context) (*order.TransitionResult, error) {
			return c.backend.Cancel(ctx, order.NewCancelRequest(o))
		},
	})
}

// Refund asks for confirmation and then asks the backend to refund o.
func (c *Coordinator) Refund(ctx context.Context, o *order.Order) Outcome {
	return c.run(ctx, o, transition{
		action:  order.ActionRefund,
		prompt:  c.messages.RefundPrompt,
		failed:  c.messages.RefundFailed,
		success: c.messages.Refunded,
		call: func(ctx context.Context) (*order.TransitionResult, error) {
			return c.backend.Refund(ctx, order.NewRefundRequest(o))
		},
	})
}

func (c *Coordinator) run(ctx context.Context, o *order.Order, t transition) (outcome Outcome) {
	scope := c.reporter.begin(t.action, o)
	defer func() { outcome = scope.finish(ctx, recover()) }()

	if err := o.Validate(); err != nil {
		scope.logger.Error("refusing action on invalid order", zap.Error(err))
		scope.report(ctx, OutcomeFault, t.failed, outbound.SeverityError)
		return
	}

	if !c.gate.Confirm(ctx, t.prompt) {
		scope.resolve(OutcomeDeclined)
		return
	}

	release, err := c.locks.Acquire(ctx, o.ID)
	if err != nil {
		scope.logger.Warn("gave up waiting for order lock", zap.Error(err))
		scope.report(ctx, OutcomeFault, t.failed, outbound.SeverityError)
		return
	}
	defer release()

	start := time.Now()
	result, err := t.call(ctx)
	c.metrics.RecordBackendCall(t.action.String(), time.Since(start))

	switch {
	case err != nil:
		scope.logger.Warn("backend transition call failed", zap.Error(err))
		scope.report(ctx, OutcomeFault, t.failed, outbound.SeverityError)

	case !result.Valid():
		scope.logger.Error("backend returned an inconsistent result", zap.Error(order.ErrInvalidResult))
		scope.report(ctx, OutcomeFault, t.failed, outbound.SeverityError)

	case result.Success:
		c.onUpdated(result.Order)
		if t.success != "" {
			scope.report(ctx, OutcomeUpdated, t.success, outbound.SeveritySuccess)
		} else {
			scope.resolve(OutcomeUpdated)
		}
		scope.logger.Info("order transition applied", zap.String("status", result.Order.Status.String()))

	default:
		message := result.Message
		if message == "" {
			message = t.failed
		}
		scope.report(ctx, OutcomeRejected, message, outbound.SeverityError)
		scope.logger.Info("order transition rejected", zap.String("reason", result.Message))
	}
	return
}
