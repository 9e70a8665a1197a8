package config

import (
	"fmt"

	"timeclock/internal/repository"
	"timeclock/internal/repository/postgres"
	"timeclock/internal/repository/sqlite"
)

// NewRepository creates the storage backend selected by the configuration.
func NewRepository(cfg *Config) (repository.Repository, error) {
	switch cfg.Storage.Backend {
	case BackendSQLite:
		repo, err := sqlite.New(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite storage: %w", err)
		}
		return repo, nil
	case BackendPostgres:
		if cfg.Storage.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres backend selected but TIMECLOCK_POSTGRES_DSN is empty")
		}
		repo, err := postgres.New(cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres storage: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
