package repository

import (
	stderrors "errors"

	"github.com/architect/backoffice/internal/accounts/models"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRepository implements login-session persistence using GORM
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository instance
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session
func (r *SessionRepository) Create(session *models.Session) error {
	if err := r.db.Create(session).Error; err != nil {
		return errors.Internal("failed to create session", err.Error())
	}
	return nil
}

// GetByToken retrieves a session by its opaque token
func (r *SessionRepository) GetByToken(token string) (*models.Session, error) {
	var session models.Session
	if err := r.db.First(&session, "token = ?", token).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Unauthorized("invalid session")
		}
		return nil, errors.Internal("failed to fetch session", err.Error())
	}
	return &session, nil
}

// Delete removes a session by token
func (r *SessionRepository) Delete(token string) error {
	if err := r.db.Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return errors.Internal("failed to delete session", err.Error())
	}
	return nil
}

// DeleteForUser removes all sessions belonging to a user
func (r *SessionRepository) DeleteForUser(userID uuid.UUID) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		return errors.Internal("failed to delete sessions", err.Error())
	}
	return nil
}
