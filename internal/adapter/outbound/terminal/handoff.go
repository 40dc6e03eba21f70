package terminal

import (
	"context"
	"fmt"
	"io"

	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/port/outbound"
	"github.com/uniedit/orderflow/internal/utils/metrics"
)

// Handoff prints the hosted checkout link for the user to open.
type Handoff struct {
	out     io.Writer
	metrics *metrics.Metrics
}

// NewHandoff creates a terminal handoff.
func NewHandoff(out io.Writer, m *metrics.Metrics) *Handoff {
	return &Handoff{out: out, metrics: m}
}

// Launch implements outbound.CheckoutHandoffPort.
func (h *Handoff) Launch(_ context.Context, publicKey string, session order.PaymentSession) {
	if session.URL != "" {
		fmt.Fprintf(h.out, "Continue to checkout: %s\n", session.URL)
	} else {
		fmt.Fprintf(h.out, "Checkout session %s is ready (key %s)\n", session.ID, publicKey)
	}
	h.metrics.RecordHandoff("terminal", true)
}

var _ outbound.CheckoutHandoffPort = (*Handoff)(nil)
