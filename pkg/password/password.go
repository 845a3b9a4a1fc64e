package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// Manager handles password hashing and verification
type Manager struct {
	saltLength int
	n          int
	r          int
	p          int
	keyLen     int
}

// NewManager creates a new password manager with default parameters
func NewManager() *Manager {
	return &Manager{
		saltLength: 32,
		n:          32768, // 2^15
		r:          8,
		p:          1,
		keyLen:     64,
	}
}

// Hash hashes a password with a random salt
func (m *Manager) Hash(password string) (string, error) {
	salt := make([]byte, m.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash, err := scrypt.Key([]byte(password), salt, m.n, m.r, m.p, m.keyLen)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	// Salt and hash are stored together, base64-encoded
	combined := append(salt, hash...)
	return base64.StdEncoding.EncodeToString(combined), nil
}

// Verify checks if a password matches the stored hash
func (m *Manager) Verify(password string, encoded string) (bool, error) {
	combined, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	if len(combined) < m.saltLength {
		return false, fmt.Errorf("invalid hash format")
	}

	salt := combined[:m.saltLength]
	storedHash := combined[m.saltLength:]

	computedHash, err := scrypt.Key([]byte(password), salt, m.n, m.r, m.p, m.keyLen)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	return subtle.ConstantTimeCompare(computedHash, storedHash) == 1, nil
}
