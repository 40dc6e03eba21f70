package order

import "errors"

// Domain errors for order.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotCancelable = errors.New("order cannot be canceled")
	ErrOrderNotRefundable = errors.New("order cannot be refunded")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrNegativeTotal      = errors.New("order total cannot be negative")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrInvalidResult      = errors.New("transition result violates its invariant")
)
