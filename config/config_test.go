package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "grocer")
	t.Setenv("DB_NAME", "groceries")
	t.Setenv("LOCK_WAIT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "grocer", cfg.DBUser)
	assert.Equal(t, "groceries", cfg.DBName)
	assert.Equal(t, 2*time.Second, cfg.LockWait)
	assert.Equal(t, 10*time.Second, cfg.LockTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "host=db.internal port=5433 user=grocer password= dbname=groceries sslmode=disable", cfg.PostgresDSN())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "grocerly", cfg.DBName)
	assert.Equal(t, "local", cfg.LockBackend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30, cfg.RateLimitLimit)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfigSecretsOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("DB_PASSWORD", "from-env")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db_password"), []byte("from-secret\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.DBPassword)
}

func TestLoadConfigCI(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("TEST_DB_PASSWORD", "ci-pass")
	t.Setenv("TEST_REDIS_URL", "redis://redis:6379/0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "ci-pass", cfg.DBPassword)
	assert.Equal(t, "redis://redis:6379/0", cfg.RedisURL)
	assert.True(t, cfg.RedisEnabled())
}

func TestValidateConfigReportsEveryProblem(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	cfg := &Config{
		ServerPort:  "http",
		DBDriver:    "sqlite",
		SQLitePath:  "",
		LockBackend: "redis",
		LockTTL:     time.Second,
		LockWait:    0,
		LogLevel:    "loud",
		LogMode:     "production",
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"SERVER_PORT", "SQLITE_PATH", "REDIS_URL", "LOCK_WAIT", "LOG_LEVEL"}, fields)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("ENV", "")
	assert.True(t, IsDevelopment())

	t.Setenv("CI", "true")
	assert.True(t, IsCI())
}
