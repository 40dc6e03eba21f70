package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/uniedit/orderflow/internal/domain/order"
)

func TestOrderEntity_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o := &order.Order{
		ID:                42,
		Number:            "B-42",
		Total:             decimal.RequireFromString("10.005"),
		Product:           order.Product{Title: "Starter", Description: "Monthly"},
		Status:            order.StatusPaid,
		ExternalReference: "pi_123",
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	e := FromDomainOrder(o)
	assert.Equal(t, "orders", e.TableName())
	assert.Equal(t, "paid", e.Status)
	assert.Equal(t, "Starter", e.ProductTitle)

	back := e.ToDomain()
	assert.Equal(t, o.ID, back.ID)
	assert.True(t, o.Total.Equal(back.Total))
	assert.Equal(t, o.Product, back.Product)
	assert.Equal(t, o.Status, back.Status)
	assert.Equal(t, o.ExternalReference, back.ExternalReference)
}
