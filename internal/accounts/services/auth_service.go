package services

import (
	"time"

	"github.com/architect/backoffice/internal/accounts/models"
	"github.com/architect/backoffice/internal/accounts/repository"
	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/common/metrics"
	"github.com/architect/backoffice/pkg/logger"
	"github.com/architect/backoffice/pkg/password"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService is the authentication guard: it verifies credentials while
// maintaining per-account lockout state as a side effect. All collaborators
// are injected so lockout timing is testable without wall-clock sleeps.
type AuthService struct {
	users       *repository.UserRepository
	sessions    *repository.SessionRepository
	passwords   *password.Manager
	clock       audit.Clock
	maxAttempts int
	lockFor     time.Duration
	sessionTTL  time.Duration
}

// NewAuthService creates the guard with the given collaborators and tuning
func NewAuthService(
	users *repository.UserRepository,
	sessions *repository.SessionRepository,
	passwords *password.Manager,
	clock audit.Clock,
	maxAttempts int,
	lockFor time.Duration,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:       users,
		sessions:    sessions,
		passwords:   passwords,
		clock:       clock,
		maxAttempts: maxAttempts,
		lockFor:     lockFor,
		sessionTTL:  sessionTTL,
	}
}

// Authenticate verifies an identifier (username or email) and password.
// Lockout bookkeeping is persisted through partial field updates so
// unrelated concurrent edits are not clobbered.
func (s *AuthService) Authenticate(identifier, plainPassword, clientIP string) (*models.User, error) {
	if identifier == "" || plainPassword == "" {
		return nil, errors.InvalidCredentials()
	}

	user, err := s.lookup(identifier)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeInvalidCredentials).Inc()
		// Same refusal for unknown identifiers and wrong passwords
		return nil, errors.InvalidCredentials()
	}

	locked, err := s.checkLock(user)
	if err != nil {
		return nil, err
	}
	if locked {
		logger.Warn("login attempt for locked account", zap.String("username", user.Username))
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeLocked).Inc()
		return nil, errors.AccountLocked()
	}

	match, err := s.passwords.Verify(plainPassword, user.PasswordHash)
	if err != nil {
		return nil, errors.Internal("failed to verify password", err.Error())
	}

	if !match {
		if err := s.handleFailure(user); err != nil {
			return nil, err
		}
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeInvalidCredentials).Inc()
		return nil, errors.InvalidCredentials()
	}

	if err := s.handleSuccess(user, clientIP); err != nil {
		return nil, err
	}
	metrics.LoginAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return user, nil
}

// Login authenticates and issues a session token on success
func (s *AuthService) Login(identifier, plainPassword, clientIP string) (*models.Session, *models.User, error) {
	user, err := s.Authenticate(identifier, plainPassword, clientIP)
	if err != nil {
		return nil, nil, err
	}

	session := &models.Session{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.clock.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// Logout invalidates a session token
func (s *AuthService) Logout(token string) error {
	return s.sessions.Delete(token)
}

// ValidateToken resolves a session token to its user id, rejecting expired
// sessions. Implements middleware.SessionValidator.
func (s *AuthService) ValidateToken(token string) (uuid.UUID, error) {
	session, err := s.sessions.GetByToken(token)
	if err != nil {
		return uuid.Nil, err
	}
	if s.clock.Now().After(session.ExpiresAt) {
		return uuid.Nil, errors.Unauthorized("session expired")
	}
	return session.UserID, nil
}

// CreateUser registers a new account with a hashed password
func (s *AuthService) CreateUser(req models.CreateUserRequest, actorID uuid.UUID) (*models.User, error) {
	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, errors.Internal("failed to hash password", err.Error())
	}

	user := &models.User{
		Username:               req.Username,
		Email:                  req.Email,
		PasswordHash:           hash,
		IsStaff:                req.IsStaff,
		PasswordChangeRequired: true,
		LastPasswordChangeAt:   s.clock.Now(),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	logger.Info("user created",
		zap.String("username", user.Username),
		zap.String("created_by", actorID.String()),
	)
	return user, nil
}

// GetUser retrieves an account by id
func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	return s.users.Get(id)
}

// ResetPassword sets a new password, clears the change-required flag and
// stamps the change time. Existing sessions stay valid.
func (s *AuthService) ResetPassword(userID uuid.UUID, newPassword string) error {
	user, err := s.users.Get(userID)
	if err != nil {
		return err
	}

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return errors.Internal("failed to hash password", err.Error())
	}

	return s.users.UpdateFields(user, map[string]interface{}{
		"password_hash":            hash,
		"password_change_required": false,
		"last_password_change_at":  s.clock.Now(),
	})
}

func (s *AuthService) lookup(identifier string) (*models.User, error) {
	user, err := s.users.GetByUsername(identifier)
	if err == nil {
		return user, nil
	}
	if !errors.IsCode(err, errors.CodeNotFound) {
		return nil, err
	}
	return s.users.GetByEmail(identifier)
}

// checkLock reports whether the account is currently locked. An expired lock
// is cleared lazily here, together with the failure counter, before any
// further authentication logic runs. Two concurrent logins may both observe
// the expiry and both reset; the reset is idempotent.
func (s *AuthService) checkLock(user *models.User) (bool, error) {
	if user.LockedUntil == nil {
		return false, nil
	}

	if s.clock.Now().After(*user.LockedUntil) {
		user.LockedUntil = nil
		user.FailedLoginAttempts = 0
		err := s.users.UpdateFields(user, map[string]interface{}{
			"locked_until":          nil,
			"failed_login_attempts": 0,
		})
		if err != nil {
			return false, err
		}
		return false, nil
	}

	return true, nil
}

func (s *AuthService) handleSuccess(user *models.User, clientIP string) error {
	now := s.clock.Now()
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now

	values := map[string]interface{}{
		"failed_login_attempts": 0,
		"locked_until":          nil,
		"last_login_at":         now,
	}
	if clientIP != "" {
		user.LastLoginIP = clientIP
		values["last_login_ip"] = clientIP
	}

	if err := s.users.UpdateFields(user, values); err != nil {
		return err
	}

	logger.Info("successful login", zap.String("username", user.Username))
	return nil
}

func (s *AuthService) handleFailure(user *models.User) error {
	user.FailedLoginAttempts++

	values := map[string]interface{}{
		"failed_login_attempts": user.FailedLoginAttempts,
	}

	if user.FailedLoginAttempts >= s.maxAttempts {
		lockedUntil := s.clock.Now().Add(s.lockFor)
		user.LockedUntil = &lockedUntil
		values["locked_until"] = lockedUntil
		logger.Warn("account locked", zap.String("username", user.Username))
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeLockout).Inc()
	}

	if err := s.users.UpdateFields(user, values); err != nil {
		return err
	}

	logger.Warn("failed login attempt",
		zap.String("username", user.Username),
		zap.Int("attempts", user.FailedLoginAttempts),
	)
	return nil
}
