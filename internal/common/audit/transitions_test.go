package audit_test

import (
	"testing"
	"time"

	"github.com/architect/backoffice/internal/common/audit"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type article struct {
	audit.Fields
	Title string
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&article{}))
	return db
}

func createArticle(t *testing.T, db *gorm.DB, title string) *article {
	t.Helper()
	a := &article{Title: title}
	require.NoError(t, db.Create(a).Error)
	return a
}

func TestSoftDeleteStampsActorAndTime(t *testing.T) {
	db := setupDB(t)
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	tr := audit.NewTransitioner(db, clock)
	actor := uuid.New()

	a := createArticle(t, db, "first")
	require.NoError(t, tr.SoftDelete(a, actor))

	assert.True(t, a.IsDeleted())
	require.NotNil(t, a.DeletedBy)
	assert.Equal(t, actor, *a.DeletedBy)
	assert.WithinDuration(t, clock.now, *a.DeletedAt, time.Second)
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	db := setupDB(t)
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	tr := audit.NewTransitioner(db, clock)
	first := uuid.New()
	second := uuid.New()

	a := createArticle(t, db, "first")
	require.NoError(t, tr.SoftDelete(a, first))

	originalStamp := *a.DeletedAt

	// A later delete by a different actor must not re-stamp
	clock.now = clock.now.Add(time.Hour)
	require.NoError(t, tr.SoftDelete(a, second))

	assert.Equal(t, first, *a.DeletedBy)
	assert.WithinDuration(t, originalStamp, *a.DeletedAt, time.Second)
}

func TestRestoreOnActiveRecordIsNoop(t *testing.T) {
	db := setupDB(t)
	tr := audit.NewTransitioner(db, &fakeClock{now: time.Now()})

	a := createArticle(t, db, "alive")
	require.NoError(t, tr.Restore(a))
	assert.False(t, a.IsDeleted())
}

func TestRestoreClearsDeletionMark(t *testing.T) {
	db := setupDB(t)
	tr := audit.NewTransitioner(db, &fakeClock{now: time.Now()})
	actor := uuid.New()

	a := createArticle(t, db, "gone")
	require.NoError(t, tr.SoftDelete(a, actor))
	require.NoError(t, tr.Restore(a))

	assert.False(t, a.IsDeleted())
	assert.Nil(t, a.DeletedBy)
}

func TestBlockReappliesStamp(t *testing.T) {
	db := setupDB(t)
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	tr := audit.NewTransitioner(db, clock)
	first := uuid.New()
	second := uuid.New()

	a := createArticle(t, db, "target")
	require.NoError(t, tr.Block(a, first))

	// Unlike soft delete, blocking again overwrites actor and time
	clock.now = clock.now.Add(time.Hour)
	require.NoError(t, tr.Block(a, second))

	assert.True(t, a.IsBlocked())
	assert.Equal(t, second, *a.BlockedBy)
	assert.WithinDuration(t, clock.now, *a.BlockedAt, time.Second)
}

func TestUnblockClearsMark(t *testing.T) {
	db := setupDB(t)
	tr := audit.NewTransitioner(db, &fakeClock{now: time.Now()})
	actor := uuid.New()

	a := createArticle(t, db, "target")
	require.NoError(t, tr.Block(a, actor))
	require.NoError(t, tr.Unblock(a))

	assert.False(t, a.IsBlocked())
	assert.Nil(t, a.BlockedBy)
}

func TestBlockAndDeleteAreIndependentAxes(t *testing.T) {
	db := setupDB(t)
	tr := audit.NewTransitioner(db, &fakeClock{now: time.Now()})
	actor := uuid.New()

	a := createArticle(t, db, "both")
	require.NoError(t, tr.Block(a, actor))
	require.NoError(t, tr.SoftDelete(a, actor))

	assert.True(t, a.IsBlocked())
	assert.True(t, a.IsDeleted())

	require.NoError(t, tr.Restore(a))
	assert.True(t, a.IsBlocked(), "restore must not clear the block mark")
}

func TestHardDeleteRemovesRow(t *testing.T) {
	db := setupDB(t)
	tr := audit.NewTransitioner(db, &fakeClock{now: time.Now()})

	a := createArticle(t, db, "doomed")
	require.NoError(t, tr.HardDelete(a))

	var count int64
	require.NoError(t, db.Model(&article{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestBulkSoftDeleteReturnsAffectedCount(t *testing.T) {
	db := setupDB(t)
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	tr := audit.NewTransitioner(db, clock)
	actor := uuid.New()

	a := createArticle(t, db, "a")
	b := createArticle(t, db, "b")
	createArticle(t, db, "c")

	affected, err := tr.BulkSoftDelete(&article{}, actor, audit.IDIn([]uuid.UUID{a.ID, b.ID}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	var remaining int64
	require.NoError(t, db.Model(&article{}).Scopes(audit.NotDeleted).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}

func TestBulkSoftDeleteRestampsAlreadyDeletedRows(t *testing.T) {
	db := setupDB(t)
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	tr := audit.NewTransitioner(db, clock)
	first := uuid.New()
	second := uuid.New()

	a := createArticle(t, db, "a")
	require.NoError(t, tr.SoftDelete(a, first))

	clock.now = clock.now.Add(time.Hour)
	affected, err := tr.BulkSoftDelete(&article{}, second, audit.IDIn([]uuid.UUID{a.ID}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected, "bulk path has no already-deleted guard")

	var reloaded article
	require.NoError(t, db.First(&reloaded, "id = ?", a.ID).Error)
	assert.Equal(t, second, *reloaded.DeletedBy)
}

func TestBulkRestoreOnlyTouchesDeletedRows(t *testing.T) {
	db := setupDB(t)
	tr := audit.NewTransitioner(db, &fakeClock{now: time.Now()})
	actor := uuid.New()

	a := createArticle(t, db, "deleted")
	b := createArticle(t, db, "alive")
	require.NoError(t, tr.SoftDelete(a, actor))

	affected, err := tr.BulkRestore(&article{}, audit.IDIn([]uuid.UUID{a.ID, b.ID}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestBulkBlockAndUnblockCounts(t *testing.T) {
	db := setupDB(t)
	tr := audit.NewTransitioner(db, &fakeClock{now: time.Now()})
	actor := uuid.New()

	a := createArticle(t, db, "a")
	b := createArticle(t, db, "b")
	ids := []uuid.UUID{a.ID, b.ID}

	affected, err := tr.BulkBlock(&article{}, actor, audit.IDIn(ids))
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	affected, err = tr.BulkUnblock(&article{}, audit.IDIn(ids))
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
}

func TestBulkHardDeleteBypassesAudit(t *testing.T) {
	db := setupDB(t)
	tr := audit.NewTransitioner(db, &fakeClock{now: time.Now()})

	a := createArticle(t, db, "a")
	createArticle(t, db, "b")

	affected, err := tr.BulkHardDelete(&article{}, audit.IDIn([]uuid.UUID{a.ID}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var total int64
	require.NoError(t, db.Model(&article{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestScopesFilterByActorAndCreationTime(t *testing.T) {
	db := setupDB(t)
	actor := uuid.New()

	a := &article{Title: "mine"}
	a.CreatedBy = &actor
	require.NoError(t, db.Create(a).Error)
	createArticle(t, db, "someone else's")

	var mine []article
	require.NoError(t, db.Scopes(audit.CreatedBy(actor)).Find(&mine).Error)
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].Title)

	var recent []article
	cutoff := time.Now().Add(-time.Minute)
	require.NoError(t, db.Scopes(audit.CreatedAfter(cutoff)).Find(&recent).Error)
	assert.Len(t, recent, 2)

	var old []article
	require.NoError(t, db.Scopes(audit.CreatedBefore(cutoff)).Find(&old).Error)
	assert.Len(t, old, 0)
}
