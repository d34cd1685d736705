// Package config provides JWT configuration functionality.
package config

import (
	"crypto/rand"
	"fmt"
)

// JWTConfig holds configuration for session cookie signing.
type JWTConfig struct {
	Secret          []byte
	ExpirationHours int
}

// NewJWTConfig creates a JWT configuration with a random per-process signing
// key. Sessions live only in this process's memory, so cookies must not
// outlive it: a restart invalidates every cookie by construction.
// JWT_EXPIRATION_HOURS (default: 24) bounds the cookie lifetime.
func NewJWTConfig() (*JWTConfig, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}

	config := &JWTConfig{
		Secret:          secret,
		ExpirationHours: GetEnvInt("JWT_EXPIRATION_HOURS", 24),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) == 0 {
		return fmt.Errorf("signing key cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
