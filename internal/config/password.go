// Package config provides password verification for the access gate.
package config

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordConfig holds the shared access-gate secret. The secret may be
// stored plaintext or as a bcrypt hash; the form is detected by prefix.
type PasswordConfig struct {
	secret string
	hashed bool
}

// NewPasswordConfig creates a password configuration for the given secret.
func NewPasswordConfig(secret string) (*PasswordConfig, error) {
	if secret == "" {
		return nil, fmt.Errorf("access secret cannot be empty")
	}
	return &PasswordConfig{
		secret: secret,
		hashed: isBcryptHash(secret),
	}, nil
}

// Verify reports whether the entered token matches the configured secret.
// Plaintext secrets are compared in constant time; hashed secrets go
// through bcrypt.
func (c *PasswordConfig) Verify(entered string) bool {
	if c.hashed {
		return bcrypt.CompareHashAndPassword([]byte(c.secret), []byte(entered)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(c.secret), []byte(entered)) == 1
}

// HashPassword hashes a secret with bcrypt, for generating a hashed
// APP_PASSWORD value out of band.
func HashPassword(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// isBcryptHash detects the standard bcrypt prefix family ($2a$, $2b$, $2y$).
func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
