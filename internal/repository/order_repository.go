package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"wms-service/internal/models"
)

// Cache TTLs for order lookups. Lists churn faster than single orders.
const (
	OrderCacheTTL    = 10 * time.Minute
	orderCachePrefix = "wms:orders:"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	List(filters OrderFilters) ([]models.Order, int64, error)
	ListIDs() ([]uint, error)
	Update(order *models.Order) error
	UpdateStatus(id uint, status models.OrderStatus) error
	Delete(id uint) error
}

// OrderFilters represents filters for querying orders
type OrderFilters struct {
	Status   *models.OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	Limit    int
}

type orderRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewOrderRepository creates a new order repository with optional Redis
// caching. A nil client disables caching entirely.
func NewOrderRepository(db *gorm.DB, redisClient *redis.Client) OrderRepository {
	return &orderRepository{db: db, redis: redisClient}
}

func orderCacheKey(id uint) string {
	return fmt.Sprintf("%sorder:%d", orderCachePrefix, id)
}

func (r *orderRepository) invalidateOrderCache(ctx context.Context, id uint) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Del(ctx, orderCacheKey(id)).Err()
}

// Create creates an order with its items in a single transaction
func (r *orderRepository) Create(order *models.Order) error {
	if err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	}); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order with items and products (with caching)
func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	ctx := context.Background()

	if r.redis != nil {
		val, err := r.redis.Get(ctx, orderCacheKey(id)).Result()
		if err == nil {
			var order models.Order
			if err := json.Unmarshal([]byte(val), &order); err == nil {
				return &order, nil
			}
		}
	}

	var order models.Order
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order %d not found", id)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if r.redis != nil {
		if data, marshalErr := json.Marshal(order); marshalErr == nil {
			r.redis.Set(ctx, orderCacheKey(id), data, OrderCacheTTL)
		}
	}

	return &order, nil
}

// List retrieves orders with filtering and pagination, newest first
func (r *orderRepository) List(filters OrderFilters) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.Model(&models.Order{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
		if filters.Page > 0 {
			query = query.Offset((filters.Page - 1) * filters.Limit)
		}
	}

	err := query.
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

func (r *orderRepository) ListIDs() ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&models.Order{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list order ids: %w", err)
	}
	return ids, nil
}

// Update updates an existing order
func (r *orderRepository) Update(order *models.Order) error {
	if err := r.db.Save(order).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	r.invalidateOrderCache(context.Background(), order.ID)
	return nil
}

// UpdateStatus updates the status of an order
func (r *orderRepository) UpdateStatus(id uint, status models.OrderStatus) error {
	result := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %d not found", id)
	}
	r.invalidateOrderCache(context.Background(), id)
	return nil
}

// Delete removes an order and, via cascade, its items
func (r *orderRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		result := tx.Delete(&models.Order{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("order %d not found", id)
		}
		return nil
	})
	if err == nil {
		r.invalidateOrderCache(context.Background(), id)
	}
	return err
}
