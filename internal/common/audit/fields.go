package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fields carries the lifecycle audit columns shared by domain entities.
// Deletion and blocking are independent axes: a record may be active,
// blocked, deleted, or both blocked and deleted.
type Fields struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index" json:"created_by,omitempty"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
	DeletedBy *uuid.UUID `gorm:"type:uuid" json:"deleted_by,omitempty"`
	BlockedAt *time.Time `json:"blocked_at,omitempty"`
	BlockedBy *uuid.UUID `gorm:"type:uuid" json:"blocked_by,omitempty"`
}

// Auditable is implemented by any model embedding Fields
type Auditable interface {
	Audit() *Fields
}

// Audit returns the embedded audit fields
func (f *Fields) Audit() *Fields {
	return f
}

// IsDeleted returns true if the record is soft-deleted
func (f *Fields) IsDeleted() bool {
	return f.DeletedAt != nil
}

// IsBlocked returns true if the record is blocked
func (f *Fields) IsBlocked() bool {
	return f.BlockedAt != nil
}

// BeforeCreate assigns a UUID primary key when none was set
func (f *Fields) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
