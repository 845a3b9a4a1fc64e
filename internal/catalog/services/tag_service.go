package services

import (
	"github.com/architect/backoffice/internal/catalog/models"
	"github.com/architect/backoffice/internal/catalog/repository"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/common/validation"
	"github.com/google/uuid"
)

// TagService manages product tags
type TagService struct {
	tags *repository.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tags *repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// CreateTag creates a tag
func (s *TagService) CreateTag(req models.CreateTagRequest, actorID uuid.UUID) (*models.Tag, error) {
	if err := validation.ValidateHexColor(req.Color); err != nil {
		return nil, errors.Validation("invalid tag color", err.Error())
	}

	tag := &models.Tag{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
	}
	tag.CreatedBy = &actorID

	if err := s.tags.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// ListTags returns all tags
func (s *TagService) ListTags() ([]*models.Tag, error) {
	return s.tags.List()
}
