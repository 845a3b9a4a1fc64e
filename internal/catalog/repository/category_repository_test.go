package repository_test

import (
	"testing"
	"time"

	"github.com/architect/backoffice/internal/catalog/models"
	"github.com/architect/backoffice/internal/catalog/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCategories(t *testing.T) (*repository.CategoryRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}))
	return repository.NewCategoryRepository(db), db
}

// buildTree creates electronics > computers > laptops plus a sibling
// (electronics > phones) and returns the nodes by slug.
func buildTree(t *testing.T, repo *repository.CategoryRepository) map[string]*models.Category {
	t.Helper()
	tree := map[string]*models.Category{}

	create := func(name, slug string, parent *models.Category) *models.Category {
		c := &models.Category{Name: name, Slug: slug, IsActive: true}
		if parent != nil {
			c.ParentID = &parent.ID
		}
		require.NoError(t, repo.Create(c))
		tree[slug] = c
		return c
	}

	electronics := create("Electronics", "electronics", nil)
	computers := create("Computers", "computers", electronics)
	create("Laptops", "laptops", computers)
	create("Phones", "phones", electronics)
	return tree
}

func TestAncestorsWalkToRoot(t *testing.T) {
	repo, _ := setupCategories(t)
	tree := buildTree(t, repo)

	ancestors, err := repo.Ancestors(tree["laptops"])
	require.NoError(t, err)
	require.Len(t, ancestors, 2)
	assert.Equal(t, "electronics", ancestors[0].Slug)
	assert.Equal(t, "computers", ancestors[1].Slug, "nearest parent comes last")
}

func TestAncestorsOfRootIsEmpty(t *testing.T) {
	repo, _ := setupCategories(t)
	tree := buildTree(t, repo)

	ancestors, err := repo.Ancestors(tree["electronics"])
	require.NoError(t, err)
	assert.Empty(t, ancestors)
	assert.True(t, tree["electronics"].IsRoot())
}

func TestDescendantsCollectSubtree(t *testing.T) {
	repo, _ := setupCategories(t)
	tree := buildTree(t, repo)

	descendants, err := repo.Descendants(tree["electronics"])
	require.NoError(t, err)

	slugs := make([]string, 0, len(descendants))
	for _, d := range descendants {
		slugs = append(slugs, d.Slug)
	}
	assert.ElementsMatch(t, []string{"computers", "phones", "laptops"}, slugs)
}

func TestDescendantsOfLeafIsEmpty(t *testing.T) {
	repo, _ := setupCategories(t)
	tree := buildTree(t, repo)

	descendants, err := repo.Descendants(tree["laptops"])
	require.NoError(t, err)
	assert.Empty(t, descendants)
}

func TestGetExcludesSoftDeleted(t *testing.T) {
	repo, db := setupCategories(t)
	tree := buildTree(t, repo)

	require.NoError(t, db.Model(tree["phones"]).Update("deleted_at", time.Now()).Error)

	_, err := repo.Get(tree["phones"].ID)
	assert.Error(t, err)

	categories, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, categories, 3)
}
