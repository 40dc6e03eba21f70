package order

import (
	"context"
	"time"
)

// Repository defines the interface for order data access.
// This interface is defined in the domain layer (Port) and implemented in infra layer (Adapter).
type Repository interface {
	// GetByID returns ErrOrderNotFound when no order has the id.
	GetByID(ctx context.Context, id int64) (*Order, error)

	// GetByNumber returns ErrOrderNotFound when no order has the number.
	GetByNumber(ctx context.Context, number string) (*Order, error)

	// UpdateStatus moves an order from one status to another only if it is
	// still in from, and returns the stored snapshot. A row that moved on in
	// the meantime yields ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id int64, from, to Status, at time.Time) (*Order, error)
}
