package audit

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transitioner applies lifecycle state transitions. Single-instance
// operations are guarded and refresh the in-memory record from storage after
// the write; bulk operations apply one atomic update over the matching rows
// and return the affected-row count, with no already-in-state guard on
// soft delete and block.
type Transitioner struct {
	db    *gorm.DB
	clock Clock
}

// NewTransitioner creates a Transitioner on the given handle and clock
func NewTransitioner(db *gorm.DB, clock Clock) *Transitioner {
	return &Transitioner{db: db, clock: clock}
}

// SoftDelete marks a single record as logically deleted, attributing the
// actor. Reapplying on an already-deleted record is a no-op.
func (t *Transitioner) SoftDelete(rec Auditable, actorID uuid.UUID) error {
	if rec.Audit().IsDeleted() {
		return nil
	}

	err := t.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(rec).Updates(map[string]interface{}{
			"deleted_at": t.clock.Now(),
			"deleted_by": actorID,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to soft delete record: %w", err)
	}

	return t.refresh(rec)
}

// Restore clears the deletion mark on a single record. Restoring a
// never-deleted record is a no-op.
func (t *Transitioner) Restore(rec Auditable) error {
	if !rec.Audit().IsDeleted() {
		return nil
	}

	err := t.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(rec).Updates(map[string]interface{}{
			"deleted_at": nil,
			"deleted_by": nil,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to restore record: %w", err)
	}

	return t.refresh(rec)
}

// Block marks a single record as blocked. Reapplying re-stamps the
// timestamp and actor.
func (t *Transitioner) Block(rec Auditable, actorID uuid.UUID) error {
	err := t.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(rec).Updates(map[string]interface{}{
			"blocked_at": t.clock.Now(),
			"blocked_by": actorID,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to block record: %w", err)
	}

	return t.refresh(rec)
}

// Unblock clears the block mark on a single record
func (t *Transitioner) Unblock(rec Auditable) error {
	err := t.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(rec).Updates(map[string]interface{}{
			"blocked_at": nil,
			"blocked_by": nil,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to unblock record: %w", err)
	}

	return t.refresh(rec)
}

// HardDelete permanently removes a single record, bypassing the audit trail
func (t *Transitioner) HardDelete(rec Auditable) error {
	if err := t.db.Delete(rec).Error; err != nil {
		return fmt.Errorf("failed to hard delete record: %w", err)
	}
	return nil
}

// BulkSoftDelete marks all rows matching the scopes as deleted and returns
// the affected-row count. Unlike the single-instance path there is no
// already-deleted guard: matching deleted rows get their timestamp
// overwritten.
func (t *Transitioner) BulkSoftDelete(model interface{}, actorID uuid.UUID, scopes ...Scope) (int64, error) {
	return t.bulkUpdate(model, map[string]interface{}{
		"deleted_at": t.clock.Now(),
		"deleted_by": actorID,
	}, scopes)
}

// BulkRestore clears the deletion mark on matching rows that are currently
// deleted and returns the affected-row count
func (t *Transitioner) BulkRestore(model interface{}, scopes ...Scope) (int64, error) {
	scopes = append(scopes, OnlyDeleted)
	return t.bulkUpdate(model, map[string]interface{}{
		"deleted_at": nil,
		"deleted_by": nil,
	}, scopes)
}

// BulkBlock marks all matching rows as blocked and returns the count
func (t *Transitioner) BulkBlock(model interface{}, actorID uuid.UUID, scopes ...Scope) (int64, error) {
	return t.bulkUpdate(model, map[string]interface{}{
		"blocked_at": t.clock.Now(),
		"blocked_by": actorID,
	}, scopes)
}

// BulkUnblock clears the block mark on all matching rows and returns the count
func (t *Transitioner) BulkUnblock(model interface{}, scopes ...Scope) (int64, error) {
	return t.bulkUpdate(model, map[string]interface{}{
		"blocked_at": nil,
		"blocked_by": nil,
	}, scopes)
}

// BulkHardDelete permanently removes all matching rows, bypassing the audit
// trail, and returns the count
func (t *Transitioner) BulkHardDelete(model interface{}, scopes ...Scope) (int64, error) {
	var affected int64
	err := t.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Model(model).
			Scopes(scopes...).
			Delete(model)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to hard delete records: %w", err)
	}
	return affected, nil
}

func (t *Transitioner) bulkUpdate(model interface{}, values map[string]interface{}, scopes []Scope) (int64, error) {
	var affected int64
	err := t.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Model(model).
			Scopes(scopes...).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update records: %w", err)
	}
	return affected, nil
}

// refresh reloads the record from storage so the caller observes persisted
// values, including server-computed timestamps. Soft-deleted rows are still
// visible here since the default scope lives in the repositories.
func (t *Transitioner) refresh(rec Auditable) error {
	if err := t.db.First(rec, "id = ?", rec.Audit().ID).Error; err != nil {
		return fmt.Errorf("failed to reload record: %w", err)
	}
	return nil
}
