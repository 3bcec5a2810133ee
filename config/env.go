package config

import (
	"os"
)

// Environment is the runtime environment the server was started in. It
// selects configuration defaults only; required values still come from the
// environment or Docker secrets.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment resolves the current environment. CI detection wins over
// the ENV variable; anything unrecognized falls back to development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	case "development":
		return Development
	default:
		return Development
	}
}

// IsProduction reports whether the server runs in production mode.
func IsProduction() bool {
	return GetEnvironment() == Production
}
