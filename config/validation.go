package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that every value the server cannot run without is
// present. Object storage settings are optional: without them the admin
// image-upload endpoint is disabled rather than the whole server refusing to
// start.
func ValidateConfig(cfg *Config) error {
	var errors []string

	required := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_NAME":     cfg.DBName,
	}
	for name, value := range required {
		if value == "" {
			errors = append(errors, fmt.Sprintf("required configuration %s is not set", name))
		}
	}

	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET (or the jwt_secret Docker secret) is required")
	}

	// Partial storage config is a misconfiguration; all-or-nothing.
	storageSet := cfg.S3Endpoint != "" || cfg.S3AccessKey != "" || cfg.S3SecretKey != "" || cfg.PublicBaseURL != ""
	if storageSet {
		if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" || cfg.PublicBaseURL == "" {
			errors = append(errors, "object storage requires S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY and S3_PUBLIC_BASE_URL together")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(errors, "\n  "))
	}
	return nil
}

// StorageConfigured reports whether the object storage settings are usable.
func (c *Config) StorageConfigured() bool {
	return c.S3AccessKey != "" && c.S3SecretKey != "" && c.PublicBaseURL != ""
}
