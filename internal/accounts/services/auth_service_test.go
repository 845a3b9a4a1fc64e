package services_test

import (
	"testing"
	"time"

	"github.com/architect/backoffice/internal/accounts/models"
	"github.com/architect/backoffice/internal/accounts/repository"
	"github.com/architect/backoffice/internal/accounts/services"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/pkg/password"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxAttempts = 3
	lockFor     = 15 * time.Minute
	sessionTTL  = 24 * time.Hour
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func setupAuth(t *testing.T) (*services.AuthService, *repository.UserRepository, *fakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))

	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	users := repository.NewUserRepository(db)
	sessions := repository.NewSessionRepository(db)
	auth := services.NewAuthService(
		users, sessions, password.NewManager(), clock,
		maxAttempts, lockFor, sessionTTL,
	)
	return auth, users, clock
}

func createTestUser(t *testing.T, auth *services.AuthService) *models.User {
	t.Helper()
	user, err := auth.CreateUser(models.CreateUserRequest{
		Username: "mrios",
		Email:    "mrios@example.com",
		Password: "correct-horse-battery",
	}, uuid.Nil)
	require.NoError(t, err)
	return user
}

func TestAuthenticateEmptyCredentialsFailFast(t *testing.T) {
	auth, _, _ := setupAuth(t)

	_, err := auth.Authenticate("", "secret", "")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidCredentials))

	_, err = auth.Authenticate("mrios", "", "")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidCredentials))
}

func TestAuthenticateUnknownIdentifier(t *testing.T) {
	auth, _, _ := setupAuth(t)

	_, err := auth.Authenticate("nobody", "whatever1", "")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidCredentials))
}

func TestAuthenticateByUsernameAndEmail(t *testing.T) {
	auth, _, _ := setupAuth(t)
	createTestUser(t, auth)

	user, err := auth.Authenticate("mrios", "correct-horse-battery", "")
	require.NoError(t, err)
	assert.Equal(t, "mrios", user.Username)

	user, err = auth.Authenticate("mrios@example.com", "correct-horse-battery", "")
	require.NoError(t, err)
	assert.Equal(t, "mrios", user.Username)
}

func TestFailedAttemptsAccumulateUntilLock(t *testing.T) {
	auth, users, clock := setupAuth(t)
	created := createTestUser(t, auth)

	for i := 1; i < maxAttempts; i++ {
		_, err := auth.Authenticate("mrios", "wrong-password", "")
		assert.True(t, errors.IsCode(err, errors.CodeInvalidCredentials))

		user, err := users.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, i, user.FailedLoginAttempts)
		assert.Nil(t, user.LockedUntil)
	}

	// The attempt that reaches the threshold sets the lock
	_, err := auth.Authenticate("mrios", "wrong-password", "")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidCredentials))

	user, err := users.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, maxAttempts, user.FailedLoginAttempts)
	require.NotNil(t, user.LockedUntil)
	assert.WithinDuration(t, clock.now.Add(lockFor), *user.LockedUntil, time.Second)
}

func TestLockedAccountRefusesCorrectPassword(t *testing.T) {
	auth, _, _ := setupAuth(t)
	createTestUser(t, auth)

	for i := 0; i < maxAttempts; i++ {
		_, _ = auth.Authenticate("mrios", "wrong-password", "")
	}

	_, err := auth.Authenticate("mrios", "correct-horse-battery", "")
	assert.True(t, errors.IsCode(err, errors.CodeAccountLocked))
}

func TestExpiredLockIsClearedLazily(t *testing.T) {
	auth, users, clock := setupAuth(t)
	created := createTestUser(t, auth)

	for i := 0; i < maxAttempts; i++ {
		_, _ = auth.Authenticate("mrios", "wrong-password", "")
	}

	clock.now = clock.now.Add(lockFor + time.Minute)

	// A wrong password after expiry starts counting from a clean slate
	_, err := auth.Authenticate("mrios", "wrong-password", "")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidCredentials))

	user, err := users.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, user.FailedLoginAttempts)
	assert.Nil(t, user.LockedUntil)
}

func TestSuccessResetsCounterAndRecordsIP(t *testing.T) {
	auth, users, clock := setupAuth(t)
	created := createTestUser(t, auth)

	_, _ = auth.Authenticate("mrios", "wrong-password", "")

	_, err := auth.Authenticate("mrios", "correct-horse-battery", "203.0.113.7")
	require.NoError(t, err)

	user, err := users.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, user.FailedLoginAttempts)
	assert.Nil(t, user.LockedUntil)
	assert.Equal(t, "203.0.113.7", user.LastLoginIP)
	require.NotNil(t, user.LastLoginAt)
	assert.WithinDuration(t, clock.now, *user.LastLoginAt, time.Second)
}

func TestSuccessWithoutClientIPKeepsPreviousIP(t *testing.T) {
	auth, users, _ := setupAuth(t)
	created := createTestUser(t, auth)

	_, err := auth.Authenticate("mrios", "correct-horse-battery", "203.0.113.7")
	require.NoError(t, err)

	_, err = auth.Authenticate("mrios", "correct-horse-battery", "")
	require.NoError(t, err)

	user, err := users.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", user.LastLoginIP)
}

func TestLoginIssuesSessionAndValidateTokenHonorsExpiry(t *testing.T) {
	auth, _, clock := setupAuth(t)
	created := createTestUser(t, auth)

	session, user, err := auth.Login("mrios", "correct-horse-battery", "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, session.Token)

	userID, err := auth.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)

	clock.now = clock.now.Add(sessionTTL + time.Minute)
	_, err = auth.ValidateToken(session.Token)
	assert.Error(t, err)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	auth, _, _ := setupAuth(t)
	createTestUser(t, auth)

	session, _, err := auth.Login("mrios", "correct-horse-battery", "")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(session.Token))

	_, err = auth.ValidateToken(session.Token)
	assert.Error(t, err)
}

func TestResetPasswordClearsChangeRequiredFlag(t *testing.T) {
	auth, users, _ := setupAuth(t)
	created := createTestUser(t, auth)
	require.True(t, created.PasswordChangeRequired)

	require.NoError(t, auth.ResetPassword(created.ID, "new-password-123"))

	user, err := users.Get(created.ID)
	require.NoError(t, err)
	assert.False(t, user.PasswordChangeRequired)

	_, err = auth.Authenticate("mrios", "new-password-123", "")
	assert.NoError(t, err)
}
