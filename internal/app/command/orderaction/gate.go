package orderaction

import (
	"context"

	"github.com/uniedit/orderflow/internal/port/outbound"
	"go.uber.org/zap"
)

// ConfirmationGate captures explicit intent before a destructive action.
type ConfirmationGate struct {
	port   outbound.ConfirmationPort
	logger *zap.Logger
}

// NewConfirmationGate creates a gate over a confirmation surface.
func NewConfirmationGate(port outbound.ConfirmationPort, logger *zap.Logger) *ConfirmationGate {
	return &ConfirmationGate{port: port, logger: logger}
}

// Confirm returns true only when the user explicitly answered yes.
// A negative answer, a dismissal, a prompt error or a done context all
// return false.
func (g *ConfirmationGate) Confirm(ctx context.Context, prompt outbound.Prompt) bool {
	if ctx.Err() != nil {
		return false
	}

	answer, err := g.port.Ask(ctx, prompt)
	if err != nil {
		g.logger.Debug("confirmation prompt failed", zap.Error(err))
		return false
	}

	return answer == outbound.AnswerYes
}
