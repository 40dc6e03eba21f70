package orderaction

import (
	"context"
	"sync"

	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/port/outbound"
	"github.com/uniedit/orderflow/internal/utils/metrics"
	"go.uber.org/zap"
)

// Outcome is the terminal state of one action invocation.
type Outcome string

const (
	// OutcomeDeclined means the user did not confirm; nothing happened.
	OutcomeDeclined Outcome = "declined"
	// OutcomeUpdated means the backend accepted and the view got the new snapshot.
	OutcomeUpdated Outcome = "updated"
	// OutcomeRejected means the backend refused and its message was reported.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFault means a call did not complete and a fallback was reported.
	OutcomeFault Outcome = "fault"
	// OutcomeLaunched means a checkout session was handed off.
	OutcomeLaunched Outcome = "launched"
	// OutcomeUnavailable means no checkout session could be started.
	OutcomeUnavailable Outcome = "unavailable"
)

// String returns the outcome name.
func (o Outcome) String() string {
	return string(o)
}

// Reporter maps terminal results to user-visible notifications.
type Reporter struct {
	notifier   outbound.NotifierPort
	metrics    *metrics.Metrics
	logger     *zap.Logger
	unexpected string
}

// NewReporter creates a reporter. unexpected is the text shown when an
// action ends without an outcome; empty uses the default.
func NewReporter(notifier outbound.NotifierPort, m *metrics.Metrics, logger *zap.Logger, unexpected string) *Reporter {
	if unexpected == "" {
		unexpected = DefaultMessages().Unexpected
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
		unexpected: unexpected,
	}
}

// Report sends one message to the outcome surface.
func (r *Reporter) Report(ctx context.Context, message string, severity outbound.Severity) {
	r.notifier.Notify(ctx, message, severity)
}

// begin opens the scope that tracks one action invocation.
func (r *Reporter) begin(action order.Action, o *order.Order) *actionScope {
	fields := []zap.Field{zap.String("action", action.String())}
	if o != nil {
		fields = append(fields,
			zap.Int64("order_id", o.ID),
			zap.String("order_number", o.Number),
		)
	}
	return &actionScope{
		reporter: r,
		action:   action,
		logger:   r.logger.With(fields...),
	}
}

// actionScope guarantees that an action ends with exactly one terminal
// outcome: a state update, a handoff, a decline, or one report.
type actionScope struct {
	reporter *Reporter
	action   order.Action
	logger   *zap.Logger

	mu      sync.Mutex
	done    bool
	outcome Outcome
}

// settle records the outcome once. It returns false if the scope was
// already settled.
func (s *actionScope) settle(outcome Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		s.logger.Warn("action already settled",
			zap.String("outcome", s.outcome.String()),
			zap.String("ignored", outcome.String()),
		)
		return false
	}
	s.done = true
	s.outcome = outcome
	return true
}

// report settles the scope and notifies the user.
func (s *actionScope) report(ctx context.Context, outcome Outcome, message string, severity outbound.Severity) {
	if !s.settle(outcome) {
		return
	}
	s.reporter.Report(ctx, message, severity)
}

// resolve settles the scope without notifying.
func (s *actionScope) resolve(outcome Outcome) {
	s.settle(outcome)
}

// finish closes the scope. recovered is the value of recover() in the
// caller's deferred function; a panic stops there. An unsettled scope is a
// defect: it is logged and the user is told something went wrong.
func (s *actionScope) finish(ctx context.Context, recovered any) Outcome {
	if recovered != nil {
		s.logger.Error("action panicked",
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
	}

	s.mu.Lock()
	done, outcome := s.done, s.outcome
	s.mu.Unlock()

	if !done {
		if recovered == nil {
			s.logger.Error("action ended without an outcome")
		}
		s.report(ctx, OutcomeFault, s.reporter.unexpected, outbound.SeverityError)
		outcome = OutcomeFault
	}

	s.reporter.metrics.RecordAction(s.action.String(), outcome.String())
	s.logger.Debug("action finished", zap.String("outcome", outcome.String()))
	return outcome
}
