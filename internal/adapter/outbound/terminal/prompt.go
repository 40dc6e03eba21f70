package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/uniedit/orderflow/internal/port/outbound"
)

// ErrNoInput is returned when the input ends before an answer.
var ErrNoInput = errors.New("no answer on input")

// Prompt asks yes/no questions on a line-oriented terminal.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer

	mu      sync.Mutex
	pending chan readResult
}

// NewPrompt creates a terminal prompt.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

type readResult struct {
	line string
	err  error
}

// Ask implements outbound.ConfirmationPort. An empty line or end of input
// is a dismissal; anything other than the yes or no label is asked again.
func (p *Prompt) Ask(ctx context.Context, prompt outbound.Prompt) (outbound.Answer, error) {
	for {
		fmt.Fprintf(p.out, "%s: %s [%s/%s] ", prompt.Title, prompt.Body, prompt.Yes, prompt.No)

		var res readResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(p.out)
			return outbound.AnswerDismissed, ctx.Err()
		case res = <-p.readLine():
			p.consumed()
		}

		answer := strings.TrimSpace(res.line)
		if res.err != nil && answer == "" {
			if errors.Is(res.err, io.EOF) {
				return outbound.AnswerDismissed, ErrNoInput
			}
			return outbound.AnswerDismissed, res.err
		}

		switch {
		case answer == "":
			return outbound.AnswerDismissed, nil
		case matches(answer, prompt.Yes, "y", "yes"):
			return outbound.AnswerYes, nil
		case matches(answer, prompt.No, "n", "no"):
			return outbound.AnswerNo, nil
		}
		if res.err != nil {
			return outbound.AnswerDismissed, res.err
		}
	}
}

// readLine returns the channel of the read in progress, starting one if
// none is. A read abandoned by a done context is picked up by the next Ask.
func (p *Prompt) readLine() <-chan readResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending == nil {
		ch := make(chan readResult, 1)
		p.pending = ch
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
	}
	return p.pending
}

func (p *Prompt) consumed() {
	p.mu.Lock()
	p.pending = nil
	p.mu.Unlock()
}

func matches(answer, label string, aliases ...string) bool {
	if label != "" && strings.EqualFold(answer, label) {
		return true
	}
	for _, a := range aliases {
		if strings.EqualFold(answer, a) {
			return true
		}
	}
	return false
}

var _ outbound.ConfirmationPort = (*Prompt)(nil)
