package order

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder() *Order {
	return &Order{
		ID:     42,
		Number: "A-1",
		Total:  decimal.RequireFromString("150.00"),
		Product: Product{
			Title:       "Premium plan",
			Description: "Twelve months of premium access",
		},
		Status: StatusPending,
	}
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		total string
		want  int64
	}{
		{"150.00", 15000},
		{"19.995", 2000},
		{"9.999", 1000},
		{"99.999999", 10000},
		{"0", 0},
		{"0.004", 0},
		{"0.005", 0},
		{"0.015", 2},
		{"0.125", 12},
		{"12.345", 1234},
		{"12.355", 1236},
		{"1234567.891", 123456789},
	}

	for _, tt := range tests {
		t.Run(tt.total, func(t *testing.T) {
			assert.Equal(t, tt.want, MinorUnits(decimal.RequireFromString(tt.total)))
		})
	}
}

func TestMinorUnits_RoundsBeforeScaling(t *testing.T) {
	// 1.015 * 100 is 101.49999... in binary floating point; on decimals it
	// rounds to 1.02 first.
	assert.Equal(t, int64(102), MinorUnits(decimal.RequireFromString("1.015")))
	assert.Equal(t, int64(102), MinorUnits(decimal.NewFromFloat(1.015)))
}

func TestMinorUnits_MidpointsRoundToEven(t *testing.T) {
	assert.Equal(t, int64(100), MinorUnits(decimal.RequireFromString("1.005")))
	assert.Equal(t, int64(102), MinorUnits(decimal.RequireFromString("1.015")))
	assert.Equal(t, int64(-1234), MinorUnits(decimal.RequireFromString("-12.345")))
}

func TestFromMinorUnits(t *testing.T) {
	assert.True(t, decimal.RequireFromString("20.00").Equal(FromMinorUnits(2000)))
	assert.Equal(t, int64(2000), MinorUnits(FromMinorUnits(2000)))
}

func TestOrder_Validate(t *testing.T) {
	t.Run("Valid order", func(t *testing.T) {
		assert.NoError(t, newTestOrder().Validate())
	})

	t.Run("Nil order", func(t *testing.T) {
		var o *Order
		assert.ErrorIs(t, o.Validate(), ErrInvalidOrder)
	})

	t.Run("Negative total", func(t *testing.T) {
		o := newTestOrder()
		o.Total = decimal.RequireFromString("-1")
		assert.ErrorIs(t, o.Validate(), ErrNegativeTotal)
	})

	t.Run("Missing number", func(t *testing.T) {
		o := newTestOrder()
		o.Number = ""
		assert.ErrorIs(t, o.Validate(), ErrInvalidOrder)
	})

	t.Run("Unknown status", func(t *testing.T) {
		o := newTestOrder()
		o.Status = "shipped"
		assert.ErrorIs(t, o.Validate(), ErrInvalidOrder)
	})
}

func TestOrder_WithStatus(t *testing.T) {
	o := newTestOrder()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	moved := o.WithStatus(StatusCanceled, at)

	assert.Equal(t, StatusCanceled, moved.Status)
	assert.Equal(t, at, moved.UpdatedAt)
	assert.Equal(t, StatusPending, o.Status, "original snapshot must not change")
	assert.NotSame(t, o, moved)
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("Pending can be paid or canceled", func(t *testing.T) {
		assert.True(t, StatusPending.CanTransitionTo(StatusPaid))
		assert.True(t, StatusPending.CanTransitionTo(StatusCanceled))
		assert.False(t, StatusPending.CanTransitionTo(StatusRefunded))
	})

	t.Run("Paid can only be refunded", func(t *testing.T) {
		assert.Equal(t, []Status{StatusRefunded}, StatusPaid.AllowedTransitions())
		assert.False(t, StatusPaid.CanTransitionTo(StatusCanceled))
	})

	t.Run("Terminal states", func(t *testing.T) {
		for _, s := range []Status{StatusCanceled, StatusRefunded} {
			assert.True(t, s.IsTerminal())
			assert.Empty(t, s.AllowedTransitions())
		}
	})

	t.Run("Unknown status has no transitions", func(t *testing.T) {
		assert.False(t, Status("bogus").CanTransitionTo(StatusPaid))
		assert.Empty(t, Status("bogus").AllowedTransitions())
	})

	t.Run("ValidateTransition wraps sentinel", func(t *testing.T) {
		err := ValidateTransition(StatusCanceled, StatusCanceled)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidTransition))
		assert.NoError(t, ValidateTransition(StatusPaid, StatusRefunded))
	})
}

func TestTransitionResult_Valid(t *testing.T) {
	o := newTestOrder()

	assert.True(t, Succeeded(o).Valid())
	assert.True(t, Rejected("Order not eligible for refund").Valid())
	assert.False(t, (&TransitionResult{Success: true}).Valid())
	assert.False(t, (&TransitionResult{Success: false, Order: o, Message: "x"}).Valid())

	var nilResult *TransitionResult
	assert.False(t, nilResult.Valid())
}

func TestPaymentSessionResult_HasSession(t *testing.T) {
	var nilResult *PaymentSessionResult
	assert.False(t, nilResult.HasSession())
	assert.False(t, (&PaymentSessionResult{}).HasSession())
	assert.False(t, (&PaymentSessionResult{Session: &PaymentSession{}}).HasSession())
	assert.True(t, (&PaymentSessionResult{Session: &PaymentSession{ID: "cs_test_1"}}).HasSession())
}

func TestRequestBuilders(t *testing.T) {
	o := newTestOrder()

	t.Run("Cancel", func(t *testing.T) {
		req := NewCancelRequest(o)
		assert.Equal(t, int64(42), req.OrderID)
		assert.Equal(t, ActionCancel, req.Action())
		assert.NotEmpty(t, req.Key())
	})

	t.Run("Refund", func(t *testing.T) {
		req := NewRefundRequest(o)
		assert.Equal(t, int64(42), req.OrderID)
		assert.Equal(t, ActionRefund, req.Action())
	})

	t.Run("Create session", func(t *testing.T) {
		o := newTestOrder()
		o.Total = decimal.RequireFromString("99.999999")

		req := NewCreateSessionRequest(o)
		assert.Equal(t, "A-1", req.OrderNumber)
		assert.Equal(t, int64(10000), req.AmountInMinorUnits)
		assert.Equal(t, "Premium plan", req.ProductTitle)
		assert.Equal(t, "Twelve months of premium access", req.ProductDescription)
		assert.Equal(t, ActionPay, req.Action())
	})

	t.Run("Each invocation gets a fresh key", func(t *testing.T) {
		assert.NotEqual(t, NewCancelRequest(o).Key(), NewCancelRequest(o).Key())
		assert.NotEqual(t, NewCreateSessionRequest(o).Key(), NewCreateSessionRequest(o).Key())
	})
}
