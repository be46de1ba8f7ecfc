package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string `mapstructure:"server_port"`
	ServerHost string `mapstructure:"server_host"`

	// Database configuration
	DBDriver   string `mapstructure:"db_driver"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSSLMode  string `mapstructure:"db_ssl_mode"`
	SQLitePath string `mapstructure:"sqlite_path"`

	// Redis configuration
	RedisURL      string `mapstructure:"redis_url"`
	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// Owner lock used around every read-then-write on grocery data
	LockBackend string        `mapstructure:"lock_backend"`
	LockTTL     time.Duration `mapstructure:"lock_ttl"`
	LockWait    time.Duration `mapstructure:"lock_wait"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
	LogMode  string `mapstructure:"log_mode"`

	// Rate limiting of the generate endpoints, disabled when Limit is 0
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
	RateLimitLimit  int           `mapstructure:"rate_limit_limit"`

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// secretKeys are read from SECRETS_DIR and override environment values.
var secretKeys = []string{
	"db_user",
	"db_password",
	"db_host",
	"db_port",
	"db_name",
	"db_ssl_mode",
	"redis_password",
	"redis_host",
	"redis_port",
	"redis_url",
	"server_port",
	"server_host",
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	switch env {
	case Development, Test:
		// a missing .env file is fine
		_ = godotenv.Load()
	case CI, Production:
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	v := newViper()
	switch env {
	case CI:
		loadCIConfig(v)
	default:
		loadSecrets(v)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("cors_allowed_origins"))

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server_port", "8080")
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "grocerly")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("sqlite_path", "grocerly.db")
	v.SetDefault("redis_url", "")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("lock_backend", "local")
	v.SetDefault("lock_ttl", "10s")
	v.SetDefault("lock_wait", "5s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_mode", "development")
	v.SetDefault("rate_limit_window", "1m")
	v.SetDefault("rate_limit_limit", 30)
	v.SetDefault("cors_allowed_origins", "http://localhost:3000")

	// SERVER_PORT, DB_HOST, ... map onto the lowercase keys
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range v.AllKeys() {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}
	return v
}

// loadCIConfig takes credentials from the CI secret variables
func loadCIConfig(v *viper.Viper) {
	if pw := os.Getenv("TEST_DB_PASSWORD"); pw != "" {
		v.Set("db_password", pw)
	}
	if pw := os.Getenv("TEST_REDIS_PASSWORD"); pw != "" {
		v.Set("redis_password", pw)
	}
	if url := os.Getenv("TEST_REDIS_URL"); url != "" {
		v.Set("redis_url", url)
	}
}

// loadSecrets overlays Docker secrets present in SECRETS_DIR
func loadSecrets(v *viper.Viper) {
	for _, name := range secretKeys {
		if value := readSecret(name); value != "" {
			v.Set(name, value)
		}
	}
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

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// PostgresDSN builds the lib/pq connection string
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisEnabled reports whether any Redis-backed component is configured.
func (c *Config) RedisEnabled() bool {
	return c.LockBackend == "redis" || c.RedisURL != ""
}
