package models

import (
	"strings"
	"time"

	"github.com/architect/backoffice/internal/common/audit"
	"github.com/google/uuid"
)

// Person kinds
const (
	PersonKindNatural = "natural"
	PersonKindLegal   = "legal"
)

// Person approval states
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Person is a natural or legal counterpart. New persons start in the pending
// approval state; approval and rejection record the deciding actor and time.
type Person struct {
	audit.Fields
	Kind           string     `gorm:"not null;size:10;index" json:"kind"`
	FirstName      string     `gorm:"size:100" json:"first_name,omitempty"`
	LastName       string     `gorm:"size:100" json:"last_name,omitempty"`
	LegalName      string     `gorm:"size:200" json:"legal_name,omitempty"`
	DocumentType   string     `gorm:"not null;size:20" json:"document_type"`
	DocumentNumber string     `gorm:"uniqueIndex;not null;size:30" json:"document_number"`
	Email          string     `gorm:"size:200" json:"email,omitempty"`
	Phone          string     `gorm:"size:30" json:"phone,omitempty"`
	ApprovalState  string     `gorm:"not null;default:pending;index" json:"approval_state"`
	ApprovedBy     *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
}

// DisplayName returns the natural person's full name or the legal name
func (p *Person) DisplayName() string {
	if p.Kind == PersonKindLegal {
		return p.LegalName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// IsApproved reports whether the person has been approved
func (p *Person) IsApproved() bool {
	return p.ApprovalState == ApprovalApproved
}

// Address is a postal address anchored to the geographic hierarchy. One
// address per person can be the default.
type Address struct {
	audit.Fields
	PersonID     uuid.UUID `gorm:"type:uuid;not null;index" json:"person_id"`
	Street       string    `gorm:"not null;size:200" json:"street"`
	Number       string    `gorm:"size:20" json:"number,omitempty"`
	Reference    string    `gorm:"size:250" json:"reference,omitempty"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null" json:"department_id"`
	ProvinceID   uuid.UUID `gorm:"type:uuid;not null" json:"province_id"`
	DistrictID   uuid.UUID `gorm:"type:uuid;not null" json:"district_id"`
	IsDefault    bool      `gorm:"default:false" json:"is_default"`
}

// FullAddress renders the street line of the address
func (a *Address) FullAddress() string {
	parts := []string{a.Street}
	if a.Number != "" {
		parts = append(parts, a.Number)
	}
	if a.Reference != "" {
		parts = append(parts, "("+a.Reference+")")
	}
	return strings.Join(parts, " ")
}

// CreatePersonRequest is the payload for registering a person
type CreatePersonRequest struct {
	Kind           string `json:"kind" binding:"required,oneof=natural legal"`
	FirstName      string `json:"first_name" binding:"max=100"`
	LastName       string `json:"last_name" binding:"max=100"`
	LegalName      string `json:"legal_name" binding:"max=200"`
	DocumentType   string `json:"document_type" binding:"required,max=20"`
	DocumentNumber string `json:"document_number" binding:"required,max=30"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone" binding:"max=30"`
}

// CreateAddressRequest is the payload for attaching an address to a person
type CreateAddressRequest struct {
	Street       string    `json:"street" binding:"required,max=200"`
	Number       string    `json:"number" binding:"max=20"`
	Reference    string    `json:"reference" binding:"max=250"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
	ProvinceID   uuid.UUID `json:"province_id" binding:"required"`
	DistrictID   uuid.UUID `json:"district_id" binding:"required"`
	IsDefault    bool      `json:"is_default"`
}
