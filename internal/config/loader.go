package config

import (
	"os"
	"strconv"
	"time"
)

// Load builds the configuration from defaults overridden by environment
// variables.
func Load() *Config {
	cfg := NewConfig()

	cfg.Server.Addr = getEnvString("TIMECLOCK_HTTP_ADDR", cfg.Server.Addr)
	cfg.Server.ShutdownTimeout = getEnvDuration("TIMECLOCK_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Storage.Backend = Backend(getEnvString("TIMECLOCK_STORAGE_BACKEND", string(cfg.Storage.Backend)))
	cfg.Storage.SQLitePath = getEnvString("TIMECLOCK_SQLITE_PATH", cfg.Storage.SQLitePath)
	cfg.Storage.PostgresDSN = getEnvString("TIMECLOCK_POSTGRES_DSN", cfg.Storage.PostgresDSN)

	cfg.Cache.RedisAddr = getEnvString("TIMECLOCK_REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.TTL = getEnvDuration("TIMECLOCK_CACHE_TTL", cfg.Cache.TTL)

	cfg.Time.Zone = getEnvString("TIMECLOCK_TIME_ZONE", cfg.Time.Zone)

	cfg.Validation.TaskTitleMinLength = getEnvInt("TIMECLOCK_TASK_TITLE_MIN", cfg.Validation.TaskTitleMinLength)
	cfg.Validation.TaskTitleMaxLength = getEnvInt("TIMECLOCK_TASK_TITLE_MAX", cfg.Validation.TaskTitleMaxLength)

	return cfg
}

// Location resolves the configured time zone. Invalid zones fall back to
// the host's local zone rather than failing startup.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Time.Zone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
