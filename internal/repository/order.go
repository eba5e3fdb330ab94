package repository

import (
	"context"

	"github.com/whoismarios/sa-gateway-demo/internal/models"

	"gorm.io/gorm"
)

// OrderRepository defines read operations for orders.
type OrderRepository interface {
	ByUser(ctx context.Context, userID string) ([]models.Order, error)
	AllWithUsers(ctx context.Context) ([]models.OrderWithUser, error)
	ListWithUsers(ctx context.Context, limit int) ([]models.OrderWithUser, error)
	Count(ctx context.Context) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository returns a new OrderRepository implementation.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// ByUser returns all orders owned by userID ordered by ascending order id.
// There is no existence check on the user; an unknown id yields an empty set.
// The id is opaque: it goes to the store unparsed, like the original services.
func (r *orderRepository) ByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return orders, nil
}

func (r *orderRepository) AllWithUsers(ctx context.Context) ([]models.OrderWithUser, error) {
	return r.joinedOrders(ctx, 0)
}

func (r *orderRepository) ListWithUsers(ctx context.Context, limit int) ([]models.OrderWithUser, error) {
	return r.joinedOrders(ctx, limit)
}

// joinedOrders runs the flat orders-join-users read. A limit of 0 means all.
func (r *orderRepository) joinedOrders(ctx context.Context, limit int) ([]models.OrderWithUser, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("orders.id, orders.product, orders.quantity, orders.created_at, orders.user_id, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = orders.user_id").
		Order("orders.id")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []models.OrderWithUser
	if err := q.Scan(&rows).Error; err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return rows, nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, models.NewDatabaseError(err)
	}
	return count, nil
}
