package services

import (
	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/common/metrics"
	"github.com/architect/backoffice/internal/common/validation"
	geoservices "github.com/architect/backoffice/internal/geo/services"
	"github.com/architect/backoffice/internal/people/models"
	"github.com/architect/backoffice/internal/people/repository"
	"github.com/google/uuid"
)

// PeopleService manages persons, their approval workflow and their
// addresses. Address geography is validated against the district → province
// → department chain.
type PeopleService struct {
	people      *repository.PeopleRepository
	geo         *geoservices.GeoService
	transitions *audit.Transitioner
	clock       audit.Clock
}

// NewPeopleService creates a new PeopleService
func NewPeopleService(
	people *repository.PeopleRepository,
	geo *geoservices.GeoService,
	transitions *audit.Transitioner,
	clock audit.Clock,
) *PeopleService {
	return &PeopleService{
		people:      people,
		geo:         geo,
		transitions: transitions,
		clock:       clock,
	}
}

// CreatePerson registers a person in the pending approval state. Natural
// persons need first and last names, legal persons a legal name.
func (s *PeopleService) CreatePerson(req models.CreatePersonRequest, actorID uuid.UUID) (*models.Person, error) {
	switch req.Kind {
	case models.PersonKindNatural:
		if req.FirstName == "" || req.LastName == "" {
			return nil, errors.Validation("natural persons require first and last names", "")
		}
	case models.PersonKindLegal:
		if req.LegalName == "" {
			return nil, errors.Validation("legal persons require a legal name", "")
		}
	}

	if err := validation.ValidateDocumentNumber(req.DocumentType, req.DocumentNumber); err != nil {
		return nil, errors.Validation("invalid document number", err.Error())
	}

	person := &models.Person{
		Kind:           req.Kind,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		LegalName:      req.LegalName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Email:          req.Email,
		Phone:          req.Phone,
		ApprovalState:  models.ApprovalPending,
	}
	person.CreatedBy = &actorID

	if err := s.people.CreatePerson(person); err != nil {
		return nil, err
	}
	return person, nil
}

// GetPerson retrieves a person by ID
func (s *PeopleService) GetPerson(id uuid.UUID) (*models.Person, error) {
	return s.people.GetPerson(id)
}

// ListPersons returns all visible persons
func (s *PeopleService) ListPersons() ([]*models.Person, error) {
	return s.people.ListPersons()
}

// ListPersonsCreatedBy returns the persons registered by an actor
func (s *PeopleService) ListPersonsCreatedBy(actorID uuid.UUID) ([]*models.Person, error) {
	return s.people.ListPersons(audit.CreatedBy(actorID))
}

// Approve moves a pending person to approved, recording the deciding actor
// and time
func (s *PeopleService) Approve(id uuid.UUID, actorID uuid.UUID) (*models.Person, error) {
	return s.decide(id, actorID, models.ApprovalApproved)
}

// Reject moves a pending person to rejected, recording the deciding actor
// and time
func (s *PeopleService) Reject(id uuid.UUID, actorID uuid.UUID) (*models.Person, error) {
	return s.decide(id, actorID, models.ApprovalRejected)
}

func (s *PeopleService) decide(id uuid.UUID, actorID uuid.UUID, state string) (*models.Person, error) {
	person, err := s.people.GetPerson(id)
	if err != nil {
		return nil, err
	}
	if person.ApprovalState != models.ApprovalPending {
		return nil, errors.Validation("person has already been decided", "")
	}

	now := s.clock.Now()
	person.ApprovalState = state
	person.ApprovedBy = &actorID
	person.ApprovedAt = &now

	err = s.people.UpdatePersonFields(person, map[string]interface{}{
		"approval_state": state,
		"approved_by":    actorID,
		"approved_at":    now,
	})
	if err != nil {
		return nil, err
	}
	return person, nil
}

// AddAddress attaches an address to a person after validating its geographic
// chain. Setting the default flag clears the previous default first.
func (s *PeopleService) AddAddress(personID uuid.UUID, req models.CreateAddressRequest, actorID uuid.UUID) (*models.Address, error) {
	if _, err := s.people.GetPerson(personID); err != nil {
		return nil, err
	}

	if err := s.geo.ValidateChain(req.DepartmentID, req.ProvinceID, req.DistrictID); err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.people.ClearDefaultAddress(personID); err != nil {
			return nil, err
		}
	}

	address := &models.Address{
		PersonID:     personID,
		Street:       req.Street,
		Number:       req.Number,
		Reference:    req.Reference,
		DepartmentID: req.DepartmentID,
		ProvinceID:   req.ProvinceID,
		DistrictID:   req.DistrictID,
		IsDefault:    req.IsDefault,
	}
	address.CreatedBy = &actorID

	if err := s.people.CreateAddress(address); err != nil {
		return nil, err
	}
	return address, nil
}

// ListAddresses returns the addresses of a person, default first
func (s *PeopleService) ListAddresses(personID uuid.UUID) ([]*models.Address, error) {
	return s.people.ListAddresses(personID)
}

// BlockPerson blocks a person, attributing the actor
func (s *PeopleService) BlockPerson(id uuid.UUID, actorID uuid.UUID) (*models.Person, error) {
	person, err := s.people.GetPerson(id)
	if err != nil {
		return nil, err
	}
	if err := s.transitions.Block(person, actorID); err != nil {
		return nil, errors.Internal("failed to block person", err.Error())
	}
	metrics.LifecycleTransitions.WithLabelValues("block", "person").Inc()
	return person, nil
}

// UnblockPerson clears the block mark on a person
func (s *PeopleService) UnblockPerson(id uuid.UUID) (*models.Person, error) {
	person, err := s.people.GetPerson(id)
	if err != nil {
		return nil, err
	}
	if err := s.transitions.Unblock(person); err != nil {
		return nil, errors.Internal("failed to unblock person", err.Error())
	}
	metrics.LifecycleTransitions.WithLabelValues("unblock", "person").Inc()
	return person, nil
}

// SoftDeletePerson logically deletes a person, attributing the actor
func (s *PeopleService) SoftDeletePerson(id uuid.UUID, actorID uuid.UUID) error {
	person, err := s.people.GetPerson(id)
	if err != nil {
		return err
	}
	if err := s.transitions.SoftDelete(person, actorID); err != nil {
		return errors.Internal("failed to delete person", err.Error())
	}
	metrics.LifecycleTransitions.WithLabelValues("soft_delete", "person").Inc()
	return nil
}
