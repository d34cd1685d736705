// Package config provides configuration loading and validation. All runtime
// configuration comes from environment variables (a .env file is loaded by
// main); flags only override presentation-level knobs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	// AppPassword is the shared access-gate secret: either plaintext or a
	// bcrypt hash (detected by prefix).
	AppPassword string
	// GeminiAPIKey authenticates against the LLM provider.
	GeminiAPIKey string

	// SessionTTL is how long an idle session survives.
	SessionTTL time.Duration
	// SessionCleanupInterval is how often idle sessions are swept.
	SessionCleanupInterval time.Duration
	// MaxUploadBytes caps the total multipart submit body.
	MaxUploadBytes int64
}

// Load reads configuration from the environment. APP_PASSWORD and
// GEMINI_API_KEY are required; everything else has defaults.
func Load() (*Config, error) {
	appPassword := os.Getenv("APP_PASSWORD")
	if appPassword == "" {
		return nil, fmt.Errorf("APP_PASSWORD environment variable is required")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	return &Config{
		AppPassword:            appPassword,
		GeminiAPIKey:           apiKey,
		SessionTTL:             GetEnvDuration("SESSION_TTL", 12*time.Hour),
		SessionCleanupInterval: GetEnvDuration("SESSION_CLEANUP_INTERVAL", 15*time.Minute),
		MaxUploadBytes:         int64(GetEnvInt("MAX_UPLOAD_MB", 25)) << 20,
	}, nil
}

// GetEnvString gets an environment variable as a string with a default value.
func GetEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets an environment variable as an integer with a default value.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvBool gets an environment variable as a boolean with a default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// GetEnvDuration gets an environment variable as a duration with a default value.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
