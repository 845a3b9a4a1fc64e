package repository

import (
	stderrors "errors"

	"github.com/architect/backoffice/internal/catalog/models"
	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository implements product persistence using GORM
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

// Create inserts a new product
func (r *ProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Conflict("product slug or sku already exists")
		}
		return errors.Internal("failed to create product", err.Error())
	}
	return nil
}

// Get retrieves a product by ID
func (r *ProductRepository) Get(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.Scopes(audit.NotDeleted).First(&product, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("product")
		}
		return nil, errors.Internal("failed to fetch product", err.Error())
	}
	return &product, nil
}

// List retrieves products with optional extra scopes and pagination
func (r *ProductRepository) List(limit, offset int, scopes ...audit.Scope) ([]*models.Product, int64, error) {
	var products []*models.Product
	var total int64

	query := r.db.Model(&models.Product{}).Scopes(audit.NotDeleted).Scopes(scopes...)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Internal("failed to count products", err.Error())
	}

	err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, 0, errors.Internal("failed to fetch products", err.Error())
	}

	return products, total, nil
}

// ListByCategory retrieves products of a category
func (r *ProductRepository) ListByCategory(categoryID uuid.UUID) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.Scopes(audit.NotDeleted).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch products", err.Error())
	}
	return products, nil
}

// Search filters products by name, sku or description
func (r *ProductRepository) Search(query string) ([]*models.Product, error) {
	var products []*models.Product
	pattern := "%" + query + "%"
	err := r.db.Scopes(audit.NotDeleted).
		Where("name LIKE ? OR sku LIKE ? OR description LIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, errors.Internal("failed to search products", err.Error())
	}
	return products, nil
}

// UpdateStock persists only the stock column
func (r *ProductRepository) UpdateStock(product *models.Product) error {
	err := r.db.Model(product).Update("stock", product.Stock).Error
	if err != nil {
		return errors.Internal("failed to update stock", err.Error())
	}
	return nil
}

// DecrementStock applies a guarded decrement: the update only matches while
// enough stock remains, so a reservation can never drive stock negative.
// Returns false when the remaining stock is insufficient.
func (r *ProductRepository) DecrementStock(id uuid.UUID, quantity int) (bool, error) {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return false, errors.Internal("failed to update stock", result.Error.Error())
	}
	return result.RowsAffected == 1, nil
}
