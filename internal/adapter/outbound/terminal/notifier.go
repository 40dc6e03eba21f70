package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/uniedit/orderflow/internal/port/outbound"
)

// Notifier writes outcome messages to a terminal, one per line.
type Notifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewNotifier creates a terminal notifier.
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// Notify implements outbound.NotifierPort.
func (n *Notifier) Notify(_ context.Context, message string, severity outbound.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s %s\n", label(severity), message)
}

func label(severity outbound.Severity) string {
	switch severity {
	case outbound.SeverityError:
		return "[error]"
	case outbound.SeveritySuccess:
		return "[ok]"
	default:
		return "[info]"
	}
}

var _ outbound.NotifierPort = (*Notifier)(nil)
