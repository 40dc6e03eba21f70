package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the item an order was placed for.
type Product struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Order is a read-only snapshot of a purchase order.
//
// Clients never edit a snapshot in place. A newer snapshot only ever comes
// from the backend's answer to a transition.
type Order struct {
	ID                int64           `json:"id"`
	Number            string          `json:"number"`
	Total             decimal.Decimal `json:"total"`
	Product           Product         `json:"product"`
	Status            Status          `json:"status"`
	ExternalReference string          `json:"external_reference,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Validate checks the fields every action relies on.
func (o *Order) Validate() error {
	if o == nil {
		return fmt.Errorf("%w: nil order", ErrInvalidOrder)
	}
	if o.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidOrder)
	}
	if o.Number == "" {
		return fmt.Errorf("%w: number cannot be empty", ErrInvalidOrder)
	}
	if o.Total.IsNegative() {
		return ErrNegativeTotal
	}
	if !o.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, o.Status)
	}
	return nil
}

// AmountInMinorUnits returns the total in the smallest currency unit.
func (o *Order) AmountInMinorUnits() int64 {
	return MinorUnits(o.Total)
}

// IsPending returns true if the order is awaiting payment.
func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}

// WithStatus returns a copy of the order moved to status at the given time.
// Used by the backend when it persists a transition.
func (o Order) WithStatus(status Status, at time.Time) *Order {
	o.Status = status
	o.UpdatedAt = at
	return &o
}
