package config

import (
	"time"
)

// Backend identifies a storage backend.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Config holds all configuration options for the timeclock service
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Cache      CacheConfig
	Time       TimeConfig
	Validation ValidationConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `env:"TIMECLOCK_HTTP_ADDR"`
	ShutdownTimeout time.Duration `env:"TIMECLOCK_SHUTDOWN_TIMEOUT"`
}

// StorageConfig holds storage backend configuration
type StorageConfig struct {
	Backend     Backend `env:"TIMECLOCK_STORAGE_BACKEND"`
	SQLitePath  string  `env:"TIMECLOCK_SQLITE_PATH"`
	PostgresDSN string  `env:"TIMECLOCK_POSTGRES_DSN"`
}

// CacheConfig holds the optional summary cache configuration. An empty
// RedisAddr disables caching.
type CacheConfig struct {
	RedisAddr string        `env:"TIMECLOCK_REDIS_ADDR"`
	TTL       time.Duration `env:"TIMECLOCK_CACHE_TTL"`
}

// TimeConfig holds time zone configuration for day boundaries
type TimeConfig struct {
	Zone string `env:"TIMECLOCK_TIME_ZONE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskTitleMinLength int `env:"TIMECLOCK_TASK_TITLE_MIN"`
	TaskTitleMaxLength int `env:"TIMECLOCK_TASK_TITLE_MAX"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			SQLitePath: "timeclock.db",
		},
		Cache: CacheConfig{
			RedisAddr: "",
			TTL:       5 * time.Minute,
		},
		Time: TimeConfig{
			Zone: "Local",
		},
		Validation: ValidationConfig{
			TaskTitleMinLength: 1,
			TaskTitleMaxLength: 255,
		},
	}
}
