package services_test

import (
	"testing"

	"github.com/architect/backoffice/internal/geo/models"
	"github.com/architect/backoffice/internal/geo/repository"
	"github.com/architect/backoffice/internal/geo/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGeo(t *testing.T) (*services.GeoService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Department{}, &models.Province{}, &models.District{}))
	return services.NewGeoService(repository.NewGeoRepository(db)), db
}

func seedChain(t *testing.T, geo *services.GeoService) (*models.Department, *models.Province, *models.District) {
	t.Helper()
	actor := uuid.New()

	dept, err := geo.CreateDepartment(models.CreateDepartmentRequest{Description: "Lima"}, actor)
	require.NoError(t, err)
	prov, err := geo.CreateProvince(models.CreateProvinceRequest{
		Description: "Lima", DepartmentID: dept.ID,
	}, actor)
	require.NoError(t, err)
	dist, err := geo.CreateDistrict(models.CreateDistrictRequest{
		Description: "Miraflores", ProvinceID: prov.ID,
	}, actor)
	require.NoError(t, err)
	return dept, prov, dist
}

func TestCreateProvinceRejectsInactiveDepartment(t *testing.T) {
	geo, db := setupGeo(t)
	actor := uuid.New()

	dept, err := geo.CreateDepartment(models.CreateDepartmentRequest{Description: "Cusco"}, actor)
	require.NoError(t, err)
	require.NoError(t, db.Model(dept).Update("is_active", false).Error)

	_, err = geo.CreateProvince(models.CreateProvinceRequest{
		Description: "Urubamba", DepartmentID: dept.ID,
	}, actor)
	assert.Error(t, err)
}

func TestCreateDistrictChecksWholeParentChain(t *testing.T) {
	geo, db := setupGeo(t)
	actor := uuid.New()

	dept, prov, _ := seedChain(t, geo)

	// Inactive department blocks district creation even when the
	// province itself is active
	require.NoError(t, db.Model(dept).Update("is_active", false).Error)

	_, err := geo.CreateDistrict(models.CreateDistrictRequest{
		Description: "San Isidro", ProvinceID: prov.ID,
	}, actor)
	assert.Error(t, err)
}

func TestValidateChainAcceptsConsistentReferences(t *testing.T) {
	geo, _ := setupGeo(t)
	dept, prov, dist := seedChain(t, geo)

	assert.NoError(t, geo.ValidateChain(dept.ID, prov.ID, dist.ID))
}

func TestValidateChainRejectsCrossedReferences(t *testing.T) {
	geo, _ := setupGeo(t)
	actor := uuid.New()

	dept, prov, dist := seedChain(t, geo)

	other, err := geo.CreateDepartment(models.CreateDepartmentRequest{Description: "Arequipa"}, actor)
	require.NoError(t, err)
	otherProv, err := geo.CreateProvince(models.CreateProvinceRequest{
		Description: "Arequipa", DepartmentID: other.ID,
	}, actor)
	require.NoError(t, err)

	assert.Error(t, geo.ValidateChain(other.ID, prov.ID, dist.ID),
		"province from a different department")
	assert.Error(t, geo.ValidateChain(dept.ID, otherProv.ID, dist.ID),
		"district from a different province")
}

func TestCreateDepartmentStampsCreator(t *testing.T) {
	geo, _ := setupGeo(t)
	actor := uuid.New()

	dept, err := geo.CreateDepartment(models.CreateDepartmentRequest{Description: "Tacna"}, actor)
	require.NoError(t, err)
	require.NotNil(t, dept.CreatedBy)
	assert.Equal(t, actor, *dept.CreatedBy)
	assert.True(t, dept.IsActive)
}
