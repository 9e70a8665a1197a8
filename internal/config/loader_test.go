package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "timeclock.db", cfg.Storage.SQLitePath)
	assert.Empty(t, cfg.Cache.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "Local", cfg.Time.Zone)
	assert.Equal(t, 1, cfg.Validation.TaskTitleMinLength)
	assert.Equal(t, 255, cfg.Validation.TaskTitleMaxLength)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("TIMECLOCK_HTTP_ADDR", ":9090")
	t.Setenv("TIMECLOCK_SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("TIMECLOCK_STORAGE_BACKEND", "postgres")
	t.Setenv("TIMECLOCK_POSTGRES_DSN", "postgres://localhost/timeclock")
	t.Setenv("TIMECLOCK_REDIS_ADDR", "localhost:6379")
	t.Setenv("TIMECLOCK_CACHE_TTL", "1m")
	t.Setenv("TIMECLOCK_TIME_ZONE", "UTC")
	t.Setenv("TIMECLOCK_TASK_TITLE_MAX", "100")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, "postgres://localhost/timeclock", cfg.Storage.PostgresDSN)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "UTC", cfg.Time.Zone)
	assert.Equal(t, 100, cfg.Validation.TaskTitleMaxLength)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TIMECLOCK_CACHE_TTL", "not-a-duration")
	t.Setenv("TIMECLOCK_TASK_TITLE_MAX", "not-a-number")

	cfg := Load()

	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 255, cfg.Validation.TaskTitleMaxLength)
}

func TestConfig_Location(t *testing.T) {
	cfg := NewConfig()

	cfg.Time.Zone = "UTC"
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Time.Zone = "Not/AZone"
	assert.Equal(t, time.Local, cfg.Location())
}

func TestNewRepository_UnknownBackend(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Backend = Backend("bogus")

	_, err := NewRepository(cfg)
	assert.Error(t, err)
}

func TestNewRepository_PostgresRequiresDSN(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Backend = BackendPostgres

	_, err := NewRepository(cfg)
	assert.Error(t, err)
}
