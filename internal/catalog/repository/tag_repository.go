package repository

import (
	stderrors "errors"

	"github.com/architect/backoffice/internal/catalog/models"
	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"gorm.io/gorm"
)

// TagRepository implements tag persistence using GORM
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository instance
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a new tag
func (r *TagRepository) Create(tag *models.Tag) error {
	if err := r.db.Create(tag).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Conflict("tag name or slug already exists")
		}
		return errors.Internal("failed to create tag", err.Error())
	}
	return nil
}

// GetBySlug retrieves a tag by slug
func (r *TagRepository) GetBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Scopes(audit.NotDeleted).First(&tag, "slug = ?", slug).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("tag")
		}
		return nil, errors.Internal("failed to fetch tag", err.Error())
	}
	return &tag, nil
}

// List retrieves all tags ordered by name
func (r *TagRepository) List() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Scopes(audit.NotDeleted).Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch tags", err.Error())
	}
	return tags, nil
}
