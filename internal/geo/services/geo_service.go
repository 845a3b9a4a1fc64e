package services

import (
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/geo/models"
	"github.com/architect/backoffice/internal/geo/repository"
	"github.com/google/uuid"
)

// GeoService holds the rules of the geographic hierarchy: children can only
// be created under active parents, and address references must form a
// consistent district → province → department chain.
type GeoService struct {
	repo *repository.GeoRepository
}

// NewGeoService creates a new GeoService
func NewGeoService(repo *repository.GeoRepository) *GeoService {
	return &GeoService{repo: repo}
}

// CreateDepartment creates a department
func (s *GeoService) CreateDepartment(req models.CreateDepartmentRequest, actorID uuid.UUID) (*models.Department, error) {
	dept := &models.Department{
		Description: req.Description,
		IsActive:    true,
	}
	dept.CreatedBy = &actorID

	if err := s.repo.CreateDepartment(dept); err != nil {
		return nil, err
	}
	return dept, nil
}

// CreateProvince creates a province under an active department
func (s *GeoService) CreateProvince(req models.CreateProvinceRequest, actorID uuid.UUID) (*models.Province, error) {
	dept, err := s.repo.GetDepartment(req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !dept.IsActive {
		return nil, errors.Validation("cannot create a province for an inactive department", "")
	}

	prov := &models.Province{
		Description:  req.Description,
		IsActive:     true,
		DepartmentID: dept.ID,
	}
	prov.CreatedBy = &actorID

	if err := s.repo.CreateProvince(prov); err != nil {
		return nil, err
	}
	return prov, nil
}

// CreateDistrict creates a district under an active province whose
// department is also active
func (s *GeoService) CreateDistrict(req models.CreateDistrictRequest, actorID uuid.UUID) (*models.District, error) {
	prov, err := s.repo.GetProvince(req.ProvinceID)
	if err != nil {
		return nil, err
	}
	if !prov.IsActive {
		return nil, errors.Validation("cannot create a district for an inactive province", "")
	}

	dept, err := s.repo.GetDepartment(prov.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !dept.IsActive {
		return nil, errors.Validation("cannot create a district for an inactive department", "")
	}

	dist := &models.District{
		Description: req.Description,
		IsActive:    true,
		ProvinceID:  prov.ID,
	}
	dist.CreatedBy = &actorID

	if err := s.repo.CreateDistrict(dist); err != nil {
		return nil, err
	}
	return dist, nil
}

// ListDepartments returns all departments
func (s *GeoService) ListDepartments() ([]*models.Department, error) {
	return s.repo.ListDepartments()
}

// ListProvinces returns the provinces of a department
func (s *GeoService) ListProvinces(departmentID uuid.UUID) ([]*models.Province, error) {
	return s.repo.ListProvinces(departmentID)
}

// ListDistricts returns the districts of a province
func (s *GeoService) ListDistricts(provinceID uuid.UUID) ([]*models.District, error) {
	return s.repo.ListDistricts(provinceID)
}

// ValidateChain checks that the district belongs to the province and the
// province to the department. Used by address validation.
func (s *GeoService) ValidateChain(departmentID, provinceID, districtID uuid.UUID) error {
	dist, err := s.repo.GetDistrict(districtID)
	if err != nil {
		return err
	}
	if dist.ProvinceID != provinceID {
		return errors.Validation("district does not belong to the given province", "")
	}

	prov, err := s.repo.GetProvince(provinceID)
	if err != nil {
		return err
	}
	if prov.DepartmentID != departmentID {
		return errors.Validation("province does not belong to the given department", "")
	}

	return nil
}
