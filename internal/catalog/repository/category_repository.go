package repository

import (
	stderrors "errors"

	"github.com/architect/backoffice/internal/catalog/models"
	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository implements category persistence. Ancestors and
// descendants are recomputed on demand by walking parent references; there
// is no cached closure table.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository instance
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Conflict("category slug already exists")
		}
		return errors.Internal("failed to create category", err.Error())
	}
	return nil
}

// Get retrieves a category by ID
func (r *CategoryRepository) Get(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.Scopes(audit.NotDeleted).First(&category, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("category")
		}
		return nil, errors.Internal("failed to fetch category", err.Error())
	}
	return &category, nil
}

// GetBySlug retrieves a category by slug
func (r *CategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Scopes(audit.NotDeleted).First(&category, "slug = ?", slug).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("category")
		}
		return nil, errors.Internal("failed to fetch category", err.Error())
	}
	return &category, nil
}

// List retrieves categories, optionally restricted with extra scopes
func (r *CategoryRepository) List(scopes ...audit.Scope) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.Scopes(audit.NotDeleted).Scopes(scopes...).
		Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch categories", err.Error())
	}
	return categories, nil
}

// Ancestors walks parent references up to the root, nearest parent last
func (r *CategoryRepository) Ancestors(category *models.Category) ([]*models.Category, error) {
	var ancestors []*models.Category

	parentID := category.ParentID
	for parentID != nil {
		parent, err := r.Get(*parentID)
		if err != nil {
			return nil, err
		}
		ancestors = append([]*models.Category{parent}, ancestors...)
		parentID = parent.ParentID
	}

	return ancestors, nil
}

// Descendants collects the subtree below a category, breadth-first
func (r *CategoryRepository) Descendants(category *models.Category) ([]*models.Category, error) {
	var descendants []*models.Category

	frontier := []uuid.UUID{category.ID}
	for len(frontier) > 0 {
		var children []*models.Category
		err := r.db.Scopes(audit.NotDeleted).
			Where("parent_id IN ?", frontier).
			Find(&children).Error
		if err != nil {
			return nil, errors.Internal("failed to fetch categories", err.Error())
		}

		frontier = frontier[:0]
		for _, child := range children {
			descendants = append(descendants, child)
			frontier = append(frontier, child.ID)
		}
	}

	return descendants, nil
}
