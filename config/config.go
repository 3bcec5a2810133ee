package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Object storage configuration (S3 or any S3-compatible store such as
	// Cloudflare R2). PublicBaseURL is the prefix under which uploaded keys
	// are publicly reachable.
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
	PublicBaseURL string
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to Docker secrets for sensitive values. Defaults
// are branched on the runtime environment: test and CI runs get their own
// database name, production requires TLS to the database unless overridden.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	dbName := "pawhaven"
	if env == Test || env == CI {
		dbName = "pawhaven_test"
	}
	sslMode := "disable"
	if env == Production {
		sslMode = "require"
	}

	cfg := &Config{
		ServerPort:    envOr("SERVER_PORT", "8080"),
		ServerHost:    envOr("SERVER_HOST", "0.0.0.0"),
		DBHost:        envOr("DB_HOST", "localhost"),
		DBPort:        envOr("DB_PORT", "5432"),
		DBUser:        envOrSecret("DB_USER", "db_user"),
		DBPassword:    envOrSecret("DB_PASSWORD", "db_password"),
		DBName:        envOr("DB_NAME", dbName),
		DBSSLMode:     envOr("DB_SSL_MODE", sslMode),
		RedisHost:     envOr("REDIS_HOST", "localhost"),
		RedisPort:     envOr("REDIS_PORT", "6379"),
		RedisPassword: envOrSecret("REDIS_PASSWORD", "redis_password"),
		RedisURL:      os.Getenv("REDIS_URL"),
		JWTSecret:     envOrSecret("JWT_SECRET", "jwt_secret"),
		S3Bucket:      envOr("S3_BUCKET_NAME", "pawhaven-pet-photos"),
		S3Region:      envOr("AWS_REGION", "auto"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		S3AccessKey:   envOrSecret("S3_ACCESS_KEY_ID", "s3_access_key_id"),
		S3SecretKey:   envOrSecret("S3_SECRET_ACCESS_KEY", "s3_secret_access_key"),
		PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.RedisDB = db
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envOr reads an environment variable with a default.
func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// envOrSecret prefers the environment variable and falls back to the Docker
// secret of the given name.
func envOrSecret(envName, secretName string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
