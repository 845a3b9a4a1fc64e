package services

import (
	"github.com/architect/backoffice/internal/catalog/models"
	"github.com/architect/backoffice/internal/catalog/repository"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/google/uuid"
)

// CategoryService holds the rules of the category tree: children can only be
// created under active categories, and the tree is traversed on demand.
type CategoryService struct {
	categories *repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CreateCategory creates a category, optionally under an active parent
func (s *CategoryService) CreateCategory(req models.CreateCategoryRequest, actorID uuid.UUID) (*models.Category, error) {
	if req.ParentID != nil {
		parent, err := s.categories.Get(*req.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.IsActive {
			return nil, errors.Validation("cannot create a category under an inactive parent", "")
		}
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsActive:    true,
		ParentID:    req.ParentID,
	}
	category.CreatedBy = &actorID

	if err := s.categories.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(id uuid.UUID) (*models.Category, error) {
	return s.categories.Get(id)
}

// ListCategories returns all visible categories
func (s *CategoryService) ListCategories() ([]*models.Category, error) {
	return s.categories.List()
}

// Ancestors returns the path from the root down to the category's parent
func (s *CategoryService) Ancestors(id uuid.UUID) ([]*models.Category, error) {
	category, err := s.categories.Get(id)
	if err != nil {
		return nil, err
	}
	return s.categories.Ancestors(category)
}

// Descendants returns the whole subtree below the category
func (s *CategoryService) Descendants(id uuid.UUID) ([]*models.Category, error) {
	category, err := s.categories.Get(id)
	if err != nil {
		return nil, err
	}
	return s.categories.Descendants(category)
}
