package repository

import (
	stderrors "errors"

	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/store/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository implements order persistence using GORM
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Transaction runs fn inside one database transaction
func (r *OrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// WithTx returns a repository bound to the given transaction
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Create inserts an order together with its items in one transaction
func (r *OrderRepository) Create(order *models.Order) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Conflict("order number already exists")
		}
		return errors.Internal("failed to create order", err.Error())
	}
	return nil
}

// Get retrieves an order with its items
func (r *OrderRepository) Get(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.Scopes(audit.NotDeleted).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("order")
		}
		return nil, errors.Internal("failed to fetch order", err.Error())
	}
	return &order, nil
}

// List retrieves orders, optionally restricted with extra scopes
func (r *OrderRepository) List(scopes ...audit.Scope) ([]*models.Order, error) {
	var orders []*models.Order
	err := r.db.Scopes(audit.NotDeleted).Scopes(scopes...).
		Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch orders", err.Error())
	}
	return orders, nil
}

// ListByCustomer retrieves the orders of a customer
func (r *OrderRepository) ListByCustomer(customerID uuid.UUID) ([]*models.Order, error) {
	var orders []*models.Order
	err := r.db.Scopes(audit.NotDeleted).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch orders", err.Error())
	}
	return orders, nil
}

// UpdateFields persists only the given columns of an order
func (r *OrderRepository) UpdateFields(order *models.Order, values map[string]interface{}) error {
	err := r.db.Model(order).Updates(values).Error
	if err != nil {
		return errors.Internal("failed to update order", err.Error())
	}
	return nil
}
