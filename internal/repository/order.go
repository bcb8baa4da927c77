package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/paging"
)

// OrderRepository defines order data operations. Orders are immutable, so
// there is no update or delete.
type OrderRepository interface {
	FindAll(ctx context.Context, filter OrderFilter, p paging.Pageable) (paging.Page[models.Order], error)
	FindAllByUserID(ctx context.Context, userID uint, p paging.Pageable) (paging.Page[models.Order], error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new OrderRepository instance.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func preloadOrderRefs(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("GiftCertificate.Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tags.id")
	})
}

func (r *orderRepository) FindAll(ctx context.Context, filter OrderFilter, p paging.Pageable) (paging.Page[models.Order], error) {
	page, err := paginate[models.Order](conn(ctx, r.db), p, models.OrderColumns, []scope{
		equals("orders.price", filter.Price),
	}, preloadOrderRefs)
	if err != nil {
		return page, fmt.Errorf("failed to list orders: %w", err)
	}
	return page, nil
}

func (r *orderRepository) FindAllByUserID(ctx context.Context, userID uint, p paging.Pageable) (paging.Page[models.Order], error) {
	page, err := paginate[models.Order](conn(ctx, r.db), p, models.OrderColumns, []scope{
		equals("orders.user_id", &userID),
	}, preloadOrderRefs)
	if err != nil {
		return page, fmt.Errorf("failed to list orders of user %d: %w", userID, err)
	}
	return page, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := preloadOrderRefs(conn(ctx, r.db)).First(&order, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find order by id %d: %w", id, translate(err))
	}
	return &order, nil
}

// Create inserts the order row only; the referenced user and certificate
// are never written through it.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := conn(ctx, r.db).Omit("User", "GiftCertificate").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}
