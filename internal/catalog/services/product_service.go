package services

import (
	"github.com/architect/backoffice/internal/catalog/models"
	"github.com/architect/backoffice/internal/catalog/repository"
	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/common/metrics"
	"github.com/google/uuid"
)

// ProductService holds product rules and routes lifecycle transitions
// through the audit layer.
type ProductService struct {
	products    *repository.ProductRepository
	categories  *repository.CategoryRepository
	transitions *audit.Transitioner
}

// NewProductService creates a new ProductService
func NewProductService(
	products *repository.ProductRepository,
	categories *repository.CategoryRepository,
	transitions *audit.Transitioner,
) *ProductService {
	return &ProductService{
		products:    products,
		categories:  categories,
		transitions: transitions,
	}
}

// CreateProduct creates a product under an existing active category
func (s *ProductService) CreateProduct(req models.CreateProductRequest, actorID uuid.UUID) (*models.Product, error) {
	category, err := s.categories.Get(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, errors.Validation("cannot create a product in an inactive category", "")
	}

	product := &models.Product{
		Name:              req.Name,
		Slug:              req.Slug,
		SKU:               req.SKU,
		Description:       req.Description,
		Price:             req.Price,
		ComparePrice:      req.ComparePrice,
		Cost:              req.Cost,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		IsActive:          true,
		CategoryID:        category.ID,
	}
	if product.LowStockThreshold == 0 {
		product.LowStockThreshold = 5
	}
	product.CreatedBy = &actorID

	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	return s.products.Get(id)
}

// ListProducts returns a page of products and the total count
func (s *ProductService) ListProducts(limit, offset int) ([]*models.Product, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.products.List(limit, offset)
}

// ListByCategory returns the products of a category
func (s *ProductService) ListByCategory(categoryID uuid.UUID) ([]*models.Product, error) {
	if _, err := s.categories.Get(categoryID); err != nil {
		return nil, err
	}
	return s.products.ListByCategory(categoryID)
}

// SearchProducts filters products by name, sku or description
func (s *ProductService) SearchProducts(query string) ([]*models.Product, error) {
	if query == "" {
		return nil, errors.BadRequest("search query is required")
	}
	return s.products.Search(query)
}

// AdjustStock changes the stock level by a signed delta and persists only the
// stock column
func (s *ProductService) AdjustStock(id uuid.UUID, delta int) (*models.Product, error) {
	product, err := s.products.Get(id)
	if err != nil {
		return nil, err
	}

	next := product.Stock + delta
	if next < 0 {
		return nil, errors.Validation("stock cannot go negative", "")
	}

	product.Stock = next
	if err := s.products.UpdateStock(product); err != nil {
		return nil, err
	}
	return product, nil
}

// SoftDeleteProduct logically deletes a product, attributing the actor
func (s *ProductService) SoftDeleteProduct(id uuid.UUID, actorID uuid.UUID) error {
	product, err := s.products.Get(id)
	if err != nil {
		return err
	}
	if err := s.transitions.SoftDelete(product, actorID); err != nil {
		return errors.Internal("failed to delete product", err.Error())
	}
	metrics.LifecycleTransitions.WithLabelValues("soft_delete", "product").Inc()
	return nil
}

// BulkSoftDeleteProducts logically deletes the selected products and returns
// the affected-row count
func (s *ProductService) BulkSoftDeleteProducts(ids []uuid.UUID, actorID uuid.UUID) (int64, error) {
	affected, err := s.transitions.BulkSoftDelete(&models.Product{}, actorID, audit.IDIn(ids))
	if err != nil {
		return 0, errors.Internal("failed to delete products", err.Error())
	}
	metrics.LifecycleTransitions.WithLabelValues("bulk_soft_delete", "product").Inc()
	return affected, nil
}

// BulkRestoreProducts restores the selected deleted products and returns the
// affected-row count
func (s *ProductService) BulkRestoreProducts(ids []uuid.UUID) (int64, error) {
	affected, err := s.transitions.BulkRestore(&models.Product{}, audit.IDIn(ids))
	if err != nil {
		return 0, errors.Internal("failed to restore products", err.Error())
	}
	metrics.LifecycleTransitions.WithLabelValues("bulk_restore", "product").Inc()
	return affected, nil
}

// BulkBlockProducts blocks the selected products and returns the affected-row
// count
func (s *ProductService) BulkBlockProducts(ids []uuid.UUID, actorID uuid.UUID) (int64, error) {
	affected, err := s.transitions.BulkBlock(&models.Product{}, actorID, audit.IDIn(ids))
	if err != nil {
		return 0, errors.Internal("failed to block products", err.Error())
	}
	metrics.LifecycleTransitions.WithLabelValues("bulk_block", "product").Inc()
	return affected, nil
}

// BulkUnblockProducts unblocks the selected products and returns the
// affected-row count
func (s *ProductService) BulkUnblockProducts(ids []uuid.UUID) (int64, error) {
	affected, err := s.transitions.BulkUnblock(&models.Product{}, audit.IDIn(ids))
	if err != nil {
		return 0, errors.Internal("failed to unblock products", err.Error())
	}
	metrics.LifecycleTransitions.WithLabelValues("bulk_unblock", "product").Inc()
	return affected, nil
}
