package orderaction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/uniedit/orderflow/internal/port/outbound"
	"go.uber.org/zap"
)

func TestConfirmationGate_Confirm(t *testing.T) {
	prompt := DefaultMessages().CancelPrompt

	tests := []struct {
		name   string
		answer outbound.Answer
		err    error
		want   bool
	}{
		{"yes", outbound.AnswerYes, nil, true},
		{"no", outbound.AnswerNo, nil, false},
		{"dismissed", outbound.AnswerDismissed, nil, false},
		{"prompt error", outbound.AnswerYes, errors.New("tty closed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := new(MockConfirmation)
			port.On("Ask", mock.Anything, prompt).Return(tt.answer, tt.err).Once()

			gate := NewConfirmationGate(port, zap.NewNop())
			assert.Equal(t, tt.want, gate.Confirm(context.Background(), prompt))
			port.AssertExpectations(t)
		})
	}

	t.Run("done context never prompts", func(t *testing.T) {
		port := new(MockConfirmation)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		gate := NewConfirmationGate(port, zap.NewNop())
		assert.False(t, gate.Confirm(ctx, prompt))
		port.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything)
	})
}

func TestMessages_WithDefaults(t *testing.T) {
	m := Messages{CancelFailed: "custom", RefundPrompt: outbound.Prompt{Body: "Sure?"}}.withDefaults()

	assert.Equal(t, "custom", m.CancelFailed)
	assert.Equal(t, "Unable to refund the order", m.RefundFailed)
	assert.Equal(t, "Sure?", m.RefundPrompt.Body)
	assert.Equal(t, "Attention", m.RefundPrompt.Title)
	assert.Equal(t, "Yes", m.RefundPrompt.Yes)
	assert.Empty(t, m.Canceled)
}
