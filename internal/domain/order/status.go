package order

import "fmt"

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusCanceled Status = "canceled"
	StatusRefunded Status = "refunded"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the status is a valid order status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCanceled, StatusRefunded:
		return true
	}
	return false
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusCanceled || s == StatusRefunded
}

// transitions defines valid state transitions.
// Only the backend consults this table; clients defer to its answer.
var transitions = map[Status][]Status{
	StatusPending:  {StatusPaid, StatusCanceled},
	StatusPaid:     {StatusRefunded},
	StatusCanceled: {}, // Terminal state
	StatusRefunded: {}, // Terminal state
}

// CanTransitionTo checks if a transition from the current status to target is valid.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, a := range allowed {
		if a == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns all allowed transitions from the current status.
func (s Status) AllowedTransitions() []Status {
	allowed, ok := transitions[s]
	if !ok {
		return []Status{}
	}
	result := make([]Status, len(allowed))
	copy(result, allowed)
	return result
}

// ValidateTransition returns ErrInvalidTransition when from -> to is not allowed.
func ValidateTransition(from, to Status) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, from, to)
	}
	return nil
}
