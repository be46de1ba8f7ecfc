package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment. CI=true wins over ENV;
// unknown or empty ENV values mean development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch env := Environment(strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))); env {
	case Production, Test:
		return env
	default:
		return Development
	}
}

// IsDevelopment returns true if the current environment is development
func IsDevelopment() bool { return GetEnvironment() == Development }

// IsTest returns true if the current environment is test
func IsTest() bool { return GetEnvironment() == Test }

// IsCI returns true if the current environment is CI
func IsCI() bool { return GetEnvironment() == CI }

// IsProduction returns true if the current environment is production
func IsProduction() bool { return GetEnvironment() == Production }
