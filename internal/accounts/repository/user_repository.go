package repository

import (
	stderrors "errors"

	"github.com/architect/backoffice/internal/accounts/models"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements account persistence using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user
func (r *UserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Conflict("username or email already exists")
		}
		return errors.Internal("failed to create user", err.Error())
	}
	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("user")
		}
		return nil, errors.Internal("failed to fetch user", err.Error())
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("user")
		}
		return nil, errors.Internal("failed to fetch user", err.Error())
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("user")
		}
		return nil, errors.Internal("failed to fetch user", err.Error())
	}
	return &user, nil
}

// List retrieves users ordered by username
func (r *UserRepository) List() ([]*models.User, error) {
	var users []*models.User
	if err := r.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, errors.Internal("failed to fetch users", err.Error())
	}
	return users, nil
}

// UpdateFields persists a partial update: only the given columns are
// written, so concurrent edits to unrelated columns are not clobbered.
func (r *UserRepository) UpdateFields(user *models.User, values map[string]interface{}) error {
	if err := r.db.Model(user).Updates(values).Error; err != nil {
		return errors.Internal("failed to update user", err.Error())
	}
	return nil
}
