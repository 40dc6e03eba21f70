package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/infra/persistence/entity"
	"gorm.io/gorm"
)

// orderRepository implements order.Repository.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// AutoMigrate creates or updates the orders table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.OrderEntity{})
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var e entity.OrderEntity
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return e.ToDomain(), nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	var e entity.OrderEntity
	err := r.db.WithContext(ctx).First(&e, "number = ?", number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return e.ToDomain(), nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, from, to order.Status, at time.Time) (*order.Order, error) {
	var updated *order.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.OrderEntity{}).
			Where("id = ? AND status = ?", id, from.String()).
			Updates(map[string]any{
				"status":     to.String(),
				"updated_at": at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order %d is no longer %s", order.ErrInvalidTransition, id, from)
		}

		var e entity.OrderEntity
		if err := tx.First(&e, "id = ?", id).Error; err != nil {
			return err
		}
		updated = e.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Compile-time check
var _ order.Repository = (*orderRepository)(nil)
