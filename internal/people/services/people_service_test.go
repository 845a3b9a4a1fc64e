package services_test

import (
	"testing"
	"time"

	"github.com/architect/backoffice/internal/common/audit"
	geoModels "github.com/architect/backoffice/internal/geo/models"
	geoRepo "github.com/architect/backoffice/internal/geo/repository"
	geoServices "github.com/architect/backoffice/internal/geo/services"
	"github.com/architect/backoffice/internal/people/models"
	"github.com/architect/backoffice/internal/people/repository"
	"github.com/architect/backoffice/internal/people/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type fixture struct {
	people *services.PeopleService
	geo    *geoServices.GeoService
	clock  *fakeClock
	actor  uuid.UUID
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&geoModels.Department{}, &geoModels.Province{}, &geoModels.District{},
		&models.Person{}, &models.Address{},
	))

	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	geo := geoServices.NewGeoService(geoRepo.NewGeoRepository(db))
	people := services.NewPeopleService(
		repository.NewPeopleRepository(db), geo, audit.NewTransitioner(db, clock), clock)

	return &fixture{people: people, geo: geo, clock: clock, actor: uuid.New()}
}

func (f *fixture) createPerson(t *testing.T, document string) *models.Person {
	t.Helper()
	person, err := f.people.CreatePerson(models.CreatePersonRequest{
		Kind:           models.PersonKindNatural,
		FirstName:      "Maria",
		LastName:       "Rios",
		DocumentType:   "dni",
		DocumentNumber: document,
	}, f.actor)
	require.NoError(t, err)
	return person
}

func (f *fixture) seedGeoChain(t *testing.T) (*geoModels.Department, *geoModels.Province, *geoModels.District) {
	t.Helper()
	dept, err := f.geo.CreateDepartment(geoModels.CreateDepartmentRequest{Description: "Lima"}, f.actor)
	require.NoError(t, err)
	prov, err := f.geo.CreateProvince(geoModels.CreateProvinceRequest{
		Description: "Lima", DepartmentID: dept.ID,
	}, f.actor)
	require.NoError(t, err)
	dist, err := f.geo.CreateDistrict(geoModels.CreateDistrictRequest{
		Description: "Miraflores", ProvinceID: prov.ID,
	}, f.actor)
	require.NoError(t, err)
	return dept, prov, dist
}

func TestCreatePersonStartsPending(t *testing.T) {
	f := setup(t)
	person := f.createPerson(t, "12345678")

	assert.Equal(t, models.ApprovalPending, person.ApprovalState)
	assert.False(t, person.IsApproved())
	assert.Equal(t, "Maria Rios", person.DisplayName())
}

func TestCreatePersonValidatesNamesByKind(t *testing.T) {
	f := setup(t)

	_, err := f.people.CreatePerson(models.CreatePersonRequest{
		Kind:           models.PersonKindNatural,
		DocumentType:   "dni",
		DocumentNumber: "111",
	}, f.actor)
	assert.Error(t, err)

	_, err = f.people.CreatePerson(models.CreatePersonRequest{
		Kind:           models.PersonKindLegal,
		DocumentType:   "ruc",
		DocumentNumber: "222",
	}, f.actor)
	assert.Error(t, err)

	legal, err := f.people.CreatePerson(models.CreatePersonRequest{
		Kind:           models.PersonKindLegal,
		LegalName:      "ACME S.A.C.",
		DocumentType:   "ruc",
		DocumentNumber: "20123456789",
	}, f.actor)
	require.NoError(t, err)
	assert.Equal(t, "ACME S.A.C.", legal.DisplayName())
}

func TestCreatePersonValidatesDocumentNumber(t *testing.T) {
	f := setup(t)

	_, err := f.people.CreatePerson(models.CreatePersonRequest{
		Kind:           models.PersonKindNatural,
		FirstName:      "Maria",
		LastName:       "Rios",
		DocumentType:   "dni",
		DocumentNumber: "1234",
	}, f.actor)
	assert.Error(t, err, "dni too short")

	_, err = f.people.CreatePerson(models.CreatePersonRequest{
		Kind:           models.PersonKindNatural,
		FirstName:      "Maria",
		LastName:       "Rios",
		DocumentType:   "dni",
		DocumentNumber: "1234567a",
	}, f.actor)
	assert.Error(t, err, "dni must be numeric")

	_, err = f.people.CreatePerson(models.CreatePersonRequest{
		Kind:           models.PersonKindLegal,
		LegalName:      "ACME S.A.C.",
		DocumentType:   "ruc",
		DocumentNumber: "20123",
	}, f.actor)
	assert.Error(t, err, "ruc must be 11 digits")
}

func TestApproveRecordsActorAndTime(t *testing.T) {
	f := setup(t)
	person := f.createPerson(t, "12345678")
	approver := uuid.New()

	approved, err := f.people.Approve(person.ID, approver)
	require.NoError(t, err)

	assert.Equal(t, models.ApprovalApproved, approved.ApprovalState)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, approver, *approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)
	assert.WithinDuration(t, f.clock.now, *approved.ApprovedAt, time.Second)
}

func TestDecisionIsFinal(t *testing.T) {
	f := setup(t)
	person := f.createPerson(t, "12345678")

	_, err := f.people.Reject(person.ID, uuid.New())
	require.NoError(t, err)

	_, err = f.people.Approve(person.ID, uuid.New())
	assert.Error(t, err)
}

func TestAddAddressValidatesGeoChain(t *testing.T) {
	f := setup(t)
	person := f.createPerson(t, "12345678")
	dept, prov, dist := f.seedGeoChain(t)

	address, err := f.people.AddAddress(person.ID, models.CreateAddressRequest{
		Street:       "Av. Larco",
		Number:       "123",
		DepartmentID: dept.ID,
		ProvinceID:   prov.ID,
		DistrictID:   dist.ID,
	}, f.actor)
	require.NoError(t, err)
	assert.Equal(t, "Av. Larco 123", address.FullAddress())

	// Crossed references are refused
	other, err := f.geo.CreateDepartment(geoModels.CreateDepartmentRequest{Description: "Cusco"}, f.actor)
	require.NoError(t, err)
	_, err = f.people.AddAddress(person.ID, models.CreateAddressRequest{
		Street:       "Calle Sol",
		DepartmentID: other.ID,
		ProvinceID:   prov.ID,
		DistrictID:   dist.ID,
	}, f.actor)
	assert.Error(t, err)
}

func TestDefaultAddressIsExclusive(t *testing.T) {
	f := setup(t)
	person := f.createPerson(t, "12345678")
	dept, prov, dist := f.seedGeoChain(t)

	first, err := f.people.AddAddress(person.ID, models.CreateAddressRequest{
		Street: "Av. Larco", DepartmentID: dept.ID, ProvinceID: prov.ID, DistrictID: dist.ID,
		IsDefault: true,
	}, f.actor)
	require.NoError(t, err)

	second, err := f.people.AddAddress(person.ID, models.CreateAddressRequest{
		Street: "Av. Pardo", DepartmentID: dept.ID, ProvinceID: prov.ID, DistrictID: dist.ID,
		IsDefault: true,
	}, f.actor)
	require.NoError(t, err)

	addresses, err := f.people.ListAddresses(person.ID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, second.ID, addresses[0].ID, "default is ordered first")
	assert.True(t, addresses[0].IsDefault)
	assert.False(t, addresses[1].IsDefault)
	_ = first
}

func TestListPersonsCreatedByScopesToActor(t *testing.T) {
	f := setup(t)
	f.createPerson(t, "12345678")

	other := uuid.New()
	_, err := f.people.CreatePerson(models.CreatePersonRequest{
		Kind:           models.PersonKindNatural,
		FirstName:      "Jose",
		LastName:       "Diaz",
		DocumentType:   "dni",
		DocumentNumber: "87654321",
	}, other)
	require.NoError(t, err)

	mine, err := f.people.ListPersonsCreatedBy(f.actor)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "12345678", mine[0].DocumentNumber)
}

func TestBlockAndSoftDeleteLifecycle(t *testing.T) {
	f := setup(t)
	person := f.createPerson(t, "12345678")

	blocked, err := f.people.BlockPerson(person.ID, f.actor)
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked())

	// Blocked persons remain retrievable
	_, err = f.people.GetPerson(person.ID)
	require.NoError(t, err)

	unblocked, err := f.people.UnblockPerson(person.ID)
	require.NoError(t, err)
	assert.False(t, unblocked.IsBlocked())

	require.NoError(t, f.people.SoftDeletePerson(person.ID, f.actor))
	_, err = f.people.GetPerson(person.ID)
	assert.Error(t, err)
}
