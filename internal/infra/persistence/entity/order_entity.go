package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniedit/orderflow/internal/domain/order"
)

// OrderEntity is the GORM model for the orders table.
type OrderEntity struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement"`
	Number             string          `gorm:"uniqueIndex;not null"`
	Total              decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	ProductTitle       string          `gorm:"not null"`
	ProductDescription string
	Status             string `gorm:"index;not null;default:pending"`
	ExternalReference  string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName returns the database table name.
func (OrderEntity) TableName() string {
	return "orders"
}

// ToDomain converts the entity to a domain Order.
func (e *OrderEntity) ToDomain() *order.Order {
	return &order.Order{
		ID:     e.ID,
		Number: e.Number,
		Total:  e.Total,
		Product: order.Product{
			Title:       e.ProductTitle,
			Description: e.ProductDescription,
		},
		Status:            order.Status(e.Status),
		ExternalReference: e.ExternalReference,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// FromDomainOrder converts a domain Order to an entity.
func FromDomainOrder(o *order.Order) *OrderEntity {
	return &OrderEntity{
		ID:                 o.ID,
		Number:             o.Number,
		Total:              o.Total,
		ProductTitle:       o.Product.Title,
		ProductDescription: o.Product.Description,
		Status:             o.Status.String(),
		ExternalReference:  o.ExternalReference,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
