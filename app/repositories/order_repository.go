// Package repositories contains the persistence layer. Repositories take
// an explicit *gorm.DB so tests can hand them an in-memory SQLite handle.
package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/anandicecream/storefront/app/models"
)

// ErrOrderNotFound is returned when no order matches the given order ID.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository wraps all order table access.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a repository backed by db.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order row.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// AllNewestFirst returns every order, most recent first.
func (r *OrderRepository) AllNewestFirst() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Order("created_at desc").Find(&orders).Error
	return orders, err
}

// FindByOrderID looks up a single order by its public order ID.
func (r *OrderRepository) FindByOrderID(orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Where("order_id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus sets the status column for the given order ID and returns
// the updated row.
func (r *OrderRepository) UpdateStatus(orderID, status string) (*models.Order, error) {
	res := r.db.Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	return r.FindByOrderID(orderID)
}

// Ping verifies the underlying database connection is alive.
func (r *OrderRepository) Ping() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
