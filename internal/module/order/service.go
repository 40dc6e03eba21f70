package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/infra/events"
	"github.com/uniedit/orderflow/internal/utils/requestctx"
	"go.uber.org/zap"
)

// User-safe rejection texts returned to clients.
const (
	MsgNotCancelable = "Order cannot be canceled"
	MsgNotRefundable = "Order not eligible for refund"
	MsgNotFound      = "Order not found"
)

// EventPublisher receives events after a transition is persisted.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// TransitionService is the backend authority for order state changes.
type TransitionService struct {
	repo      order.Repository
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewTransitionService creates a new transition service. publisher may be nil.
func NewTransitionService(repo order.Repository, publisher EventPublisher, logger *zap.Logger) *TransitionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransitionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Get returns the current snapshot of an order by its number.
func (s *TransitionService) Get(ctx context.Context, number string) (*order.Order, error) {
	o, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Cancel moves a pending order to canceled.
func (s *TransitionService) Cancel(ctx context.Context, id int64) (*order.TransitionResult, error) {
	return s.transition(ctx, order.ActionCancel, id, order.StatusCanceled, MsgNotCancelable)
}

// Refund moves a paid order to refunded.
func (s *TransitionService) Refund(ctx context.Context, id int64) (*order.TransitionResult, error) {
	return s.transition(ctx, order.ActionRefund, id, order.StatusRefunded, MsgNotRefundable)
}

func (s *TransitionService) transition(ctx context.Context, action order.Action, id int64, to order.Status, rejection string) (*order.TransitionResult, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return order.Rejected(MsgNotFound), nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	log := requestctx.Logger(ctx, s.logger)
	if err := order.ValidateTransition(current.Status, to); err != nil {
		log.Info("transition rejected",
			zap.Int64("order_id", id),
			zap.String("from", current.Status.String()),
			zap.String("to", to.String()),
		)
		return order.Rejected(rejection), nil
	}

	at := s.now()
	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, to, at)
	if err != nil {
		// Another request moved the order first.
		if errors.Is(err, order.ErrInvalidTransition) {
			return order.Rejected(rejection), nil
		}
		if errors.Is(err, order.ErrOrderNotFound) {
			return order.Rejected(MsgNotFound), nil
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	log.Info("order transitioned",
		zap.Int64("order_id", id),
		zap.String("order_number", updated.Number),
		zap.String("status", updated.Status.String()),
	)
	if s.publisher != nil {
		s.publisher.Publish(ctx, NewOrderTransitioned(action, current.Status, updated, at))
	}
	return order.Succeeded(updated), nil
}
