package models

import (
	"github.com/architect/backoffice/internal/common/audit"
	"github.com/google/uuid"
)

// Department is the top level of the geographic hierarchy
type Department struct {
	audit.Fields
	Description string `gorm:"not null;size:250;index" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// Province belongs to a department
type Province struct {
	audit.Fields
	Description  string      `gorm:"not null;size:250" json:"description"`
	IsActive     bool        `gorm:"default:true" json:"is_active"`
	DepartmentID uuid.UUID   `gorm:"type:uuid;not null;index" json:"department_id"`
	Department   *Department `json:"department,omitempty"`
}

// District belongs to a province
type District struct {
	audit.Fields
	Description string    `gorm:"not null;size:250" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	ProvinceID  uuid.UUID `gorm:"type:uuid;not null;index" json:"province_id"`
	Province    *Province `json:"province,omitempty"`
}

// CreateDepartmentRequest is the payload for creating a department
type CreateDepartmentRequest struct {
	Description string `json:"description" binding:"required,max=250"`
}

// CreateProvinceRequest is the payload for creating a province
type CreateProvinceRequest struct {
	Description  string    `json:"description" binding:"required,max=250"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
}

// CreateDistrictRequest is the payload for creating a district
type CreateDistrictRequest struct {
	Description string    `json:"description" binding:"required,max=250"`
	ProvinceID  uuid.UUID `json:"province_id" binding:"required"`
}
