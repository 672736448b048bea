package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageType)
	assert.Equal(t, "gameportal.db", cfg.SQLitePath)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.PortalIdleTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORTAL_PORT", "9090")
	t.Setenv("STORAGE_TYPE", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORTAL_SEED_DEMO", "false")
	t.Setenv("PORTAL_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("PORTAL_IDLE_TIMEOUT", "5m")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StorageSQLite, cfg.StorageType)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, 5*time.Minute, cfg.PortalIdleTimeout)
}

func TestIdleTimeoutMustBePositive(t *testing.T) {
	t.Setenv("PORTAL_IDLE_TIMEOUT", "0s")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "PORTAL_IDLE_TIMEOUT")
}

func TestLoadFromDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORTAL_HISTORY_LIMIT=25\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PORTAL_HISTORY_LIMIT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.HistoryLimit)
}

func TestRedisRequiresURL(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "redis")
	t.Setenv("REDIS_URL", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "REDIS_URL")
}

func TestInvalidStorageType(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "postgres")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestUnknownLogLevelFallsBackToInfo(t *testing.T) {
	cfg := Config{LogLevel: "chatty"}
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
