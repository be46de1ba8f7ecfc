package config

import (
	"fmt"
	"strconv"
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

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "\n")
}

var (
	validDrivers      = map[string]bool{"postgres": true, "sqlite": true}
	validLockBackends = map[string]bool{"local": true, "redis": true}
	validLogLevels    = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogModes     = map[string]bool{"development": true, "production": true}
)

// ValidateConfig checks the configuration and reports all problems at once
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if !isPort(cfg.ServerPort) {
		add("SERVER_PORT", "must be a port number, got %q", cfg.ServerPort)
	}

	switch {
	case !validDrivers[cfg.DBDriver]:
		add("DB_DRIVER", "must be postgres or sqlite, got %q", cfg.DBDriver)
	case cfg.DBDriver == "postgres":
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for postgres")
		}
		if !isPort(cfg.DBPort) {
			add("DB_PORT", "must be a port number, got %q", cfg.DBPort)
		}
		if cfg.DBUser == "" {
			add("DB_USER", "is required for postgres")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for postgres")
		}
		if IsProduction() && cfg.DBPassword == "" {
			add("db_password", "secret is required in production")
		}
	case cfg.DBDriver == "sqlite":
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for sqlite")
		}
	}

	if !validLockBackends[cfg.LockBackend] {
		add("LOCK_BACKEND", "must be local or redis, got %q", cfg.LockBackend)
	}
	if cfg.LockBackend == "redis" && cfg.RedisURL == "" && (cfg.RedisHost == "" || !isPort(cfg.RedisPort)) {
		add("REDIS_URL", "or REDIS_HOST and REDIS_PORT are required for the redis lock")
	}
	if cfg.LockTTL <= 0 {
		add("LOCK_TTL", "must be positive")
	}
	if cfg.LockWait <= 0 {
		add("LOCK_WAIT", "must be positive")
	}

	if !validLogLevels[cfg.LogLevel] {
		add("LOG_LEVEL", "must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}
	if !validLogModes[cfg.LogMode] {
		add("LOG_MODE", "must be development or production, got %q", cfg.LogMode)
	}

	if cfg.RateLimitLimit < 0 {
		add("RATE_LIMIT_LIMIT", "must not be negative")
	}
	if cfg.RateLimitLimit > 0 && cfg.RateLimitWindow <= 0 {
		add("RATE_LIMIT_WINDOW", "must be positive when rate limiting is enabled")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isPort(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0 && n < 65536
}
