package repository

import (
	stderrors "errors"

	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/people/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PeopleRepository implements person and address persistence using GORM
type PeopleRepository struct {
	db *gorm.DB
}

// NewPeopleRepository creates a new PeopleRepository instance
func NewPeopleRepository(db *gorm.DB) *PeopleRepository {
	return &PeopleRepository{db: db}
}

// CreatePerson inserts a new person
func (r *PeopleRepository) CreatePerson(person *models.Person) error {
	if err := r.db.Create(person).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Conflict("document number already registered")
		}
		return errors.Internal("failed to create person", err.Error())
	}
	return nil
}

// GetPerson retrieves a person by ID
func (r *PeopleRepository) GetPerson(id uuid.UUID) (*models.Person, error) {
	var person models.Person
	err := r.db.Scopes(audit.NotDeleted).First(&person, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("person")
		}
		return nil, errors.Internal("failed to fetch person", err.Error())
	}
	return &person, nil
}

// GetPersonByDocument retrieves a person by document number
func (r *PeopleRepository) GetPersonByDocument(documentNumber string) (*models.Person, error) {
	var person models.Person
	err := r.db.Scopes(audit.NotDeleted).
		First(&person, "document_number = ?", documentNumber).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("person")
		}
		return nil, errors.Internal("failed to fetch person", err.Error())
	}
	return &person, nil
}

// ListPersons retrieves persons, optionally restricted with extra scopes
func (r *PeopleRepository) ListPersons(scopes ...audit.Scope) ([]*models.Person, error) {
	var persons []*models.Person
	err := r.db.Scopes(audit.NotDeleted).Scopes(scopes...).
		Order("created_at DESC").Find(&persons).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch persons", err.Error())
	}
	return persons, nil
}

// UpdatePersonFields persists only the given columns of a person
func (r *PeopleRepository) UpdatePersonFields(person *models.Person, values map[string]interface{}) error {
	err := r.db.Model(person).Updates(values).Error
	if err != nil {
		return errors.Internal("failed to update person", err.Error())
	}
	return nil
}

// CreateAddress inserts a new address
func (r *PeopleRepository) CreateAddress(address *models.Address) error {
	if err := r.db.Create(address).Error; err != nil {
		return errors.Internal("failed to create address", err.Error())
	}
	return nil
}

// GetAddress retrieves an address by ID
func (r *PeopleRepository) GetAddress(id uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := r.db.Scopes(audit.NotDeleted).First(&address, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("address")
		}
		return nil, errors.Internal("failed to fetch address", err.Error())
	}
	return &address, nil
}

// ListAddresses retrieves the addresses of a person
func (r *PeopleRepository) ListAddresses(personID uuid.UUID) ([]*models.Address, error) {
	var addresses []*models.Address
	err := r.db.Scopes(audit.NotDeleted).
		Where("person_id = ?", personID).
		Order("is_default DESC, created_at ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch addresses", err.Error())
	}
	return addresses, nil
}

// ClearDefaultAddress unsets the default flag on all addresses of a person
func (r *PeopleRepository) ClearDefaultAddress(personID uuid.UUID) error {
	err := r.db.Model(&models.Address{}).
		Where("person_id = ?", personID).
		Update("is_default", false).Error
	if err != nil {
		return errors.Internal("failed to update addresses", err.Error())
	}
	return nil
}
