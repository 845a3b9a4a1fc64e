package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a back-office account. Lockout state lives directly on the
// row: failed_login_attempts counts consecutive failures, locked_until set
// and in the future refuses authentication regardless of password.
type User struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username               string     `gorm:"uniqueIndex;not null;size:150" json:"username"`
	Email                  string     `gorm:"uniqueIndex;not null;size:254" json:"email"`
	PasswordHash           string     `gorm:"not null" json:"-"`
	IsStaff                bool       `gorm:"default:false" json:"is_staff"`
	IsTemporary            bool       `gorm:"default:false" json:"is_temporary"`
	PasswordChangeRequired bool       `gorm:"default:true" json:"password_change_required"`
	LastPasswordChangeAt   time.Time  `json:"last_password_change_at"`
	FailedLoginAttempts    int        `gorm:"default:0" json:"-"`
	LockedUntil            *time.Time `json:"-"`
	LastLoginIP            string     `gorm:"size:64" json:"-"`
	LastLoginAt            *time.Time `json:"last_login_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none was set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsLockedAt reports whether the lock timestamp is set and still in the future
func (u *User) IsLockedAt(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// Session is an opaque login session issued on successful authentication
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest is the login payload; identifier is a username or email
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// CreateUserRequest is the payload for creating an account
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	IsStaff  bool   `json:"is_staff"`
}

// ChangePasswordRequest is the payload for resetting the caller's password
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}
