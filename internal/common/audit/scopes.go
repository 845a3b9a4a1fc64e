package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope is a composable query refinement in gorm's scope signature
type Scope = func(*gorm.DB) *gorm.DB

// NotDeleted is the default retrieval scope: soft-deleted rows are excluded
// unless a caller explicitly asks for them.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// OnlyDeleted returns only soft-deleted rows
func OnlyDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NOT NULL")
}

// WithDeleted applies no deletion filter
func WithDeleted(db *gorm.DB) *gorm.DB {
	return db
}

// NotBlocked excludes blocked rows
func NotBlocked(db *gorm.DB) *gorm.DB {
	return db.Where("blocked_at IS NULL")
}

// CreatedBy filters to rows created by the given actor
func CreatedBy(actorID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_by = ?", actorID)
	}
}

// UpdatedBy filters to rows last updated by the given actor
func UpdatedBy(actorID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("updated_by = ?", actorID)
	}
}

// DeletedBy filters to rows deleted by the given actor
func DeletedBy(actorID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_by = ?", actorID)
	}
}

// CreatedAfter filters to rows created strictly after t
func CreatedAfter(t time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at > ?", t)
	}
}

// CreatedBefore filters to rows created strictly before t
func CreatedBefore(t time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at < ?", t)
	}
}

// IDIn filters to rows whose primary key is in ids
func IDIn(ids []uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN ?", ids)
	}
}
