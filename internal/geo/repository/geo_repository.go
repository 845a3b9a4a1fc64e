package repository

import (
	stderrors "errors"

	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/geo/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeoRepository implements persistence for the geographic hierarchy.
// All reads apply the default not-deleted scope.
type GeoRepository struct {
	db *gorm.DB
}

// NewGeoRepository creates a new GeoRepository instance
func NewGeoRepository(db *gorm.DB) *GeoRepository {
	return &GeoRepository{db: db}
}

// CreateDepartment inserts a new department
func (r *GeoRepository) CreateDepartment(dept *models.Department) error {
	if err := r.db.Create(dept).Error; err != nil {
		return errors.Internal("failed to create department", err.Error())
	}
	return nil
}

// GetDepartment retrieves a department by ID
func (r *GeoRepository) GetDepartment(id uuid.UUID) (*models.Department, error) {
	var dept models.Department
	err := r.db.Scopes(audit.NotDeleted).First(&dept, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("department")
		}
		return nil, errors.Internal("failed to fetch department", err.Error())
	}
	return &dept, nil
}

// ListDepartments retrieves departments ordered by description
func (r *GeoRepository) ListDepartments() ([]*models.Department, error) {
	var depts []*models.Department
	err := r.db.Scopes(audit.NotDeleted).Order("description ASC").Find(&depts).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch departments", err.Error())
	}
	return depts, nil
}

// CreateProvince inserts a new province
func (r *GeoRepository) CreateProvince(prov *models.Province) error {
	if err := r.db.Create(prov).Error; err != nil {
		return errors.Internal("failed to create province", err.Error())
	}
	return nil
}

// GetProvince retrieves a province by ID
func (r *GeoRepository) GetProvince(id uuid.UUID) (*models.Province, error) {
	var prov models.Province
	err := r.db.Scopes(audit.NotDeleted).First(&prov, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("province")
		}
		return nil, errors.Internal("failed to fetch province", err.Error())
	}
	return &prov, nil
}

// ListProvinces retrieves provinces for a department
func (r *GeoRepository) ListProvinces(departmentID uuid.UUID) ([]*models.Province, error) {
	var provs []*models.Province
	err := r.db.Scopes(audit.NotDeleted).
		Where("department_id = ?", departmentID).
		Order("description ASC").
		Find(&provs).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch provinces", err.Error())
	}
	return provs, nil
}

// CreateDistrict inserts a new district
func (r *GeoRepository) CreateDistrict(dist *models.District) error {
	if err := r.db.Create(dist).Error; err != nil {
		return errors.Internal("failed to create district", err.Error())
	}
	return nil
}

// GetDistrict retrieves a district by ID
func (r *GeoRepository) GetDistrict(id uuid.UUID) (*models.District, error) {
	var dist models.District
	err := r.db.Scopes(audit.NotDeleted).First(&dist, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("district")
		}
		return nil, errors.Internal("failed to fetch district", err.Error())
	}
	return &dist, nil
}

// ListDistricts retrieves districts for a province
func (r *GeoRepository) ListDistricts(provinceID uuid.UUID) ([]*models.District, error) {
	var dists []*models.District
	err := r.db.Scopes(audit.NotDeleted).
		Where("province_id = ?", provinceID).
		Order("description ASC").
		Find(&dists).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch districts", err.Error())
	}
	return dists, nil
}
