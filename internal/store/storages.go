package store

import (
	"context"
	"fmt"

	"github.com/dkotelnikov/user-service/internal/config"
	"github.com/dkotelnikov/user-service/internal/logger"
)

// Storages aggregates every repository the service layer depends on.
type Storages struct {
	UserRepository UserRepository
}

// NewStorages selects and initialises the storage backend named by the
// configuration. SQL backends are connected, pinged, and migrated before
// the repository is handed out; the memory backend is ready immediately.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	switch cfg.DB.Driver {
	case config.DriverMemory:
		return &Storages{UserRepository: NewMemoryUserRepository(log)}, nil

	case config.DriverPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("connecting postgres: %w", err)
		}
		if err := db.Migrate(); err != nil {
			return nil, fmt.Errorf("migrating postgres schema: %w", err)
		}
		return &Storages{UserRepository: NewSQLUserRepository(db, log)}, nil

	case config.DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("connecting sqlite: %w", err)
		}
		if err := db.Migrate(); err != nil {
			return nil, fmt.Errorf("migrating sqlite schema: %w", err)
		}
		return &Storages{UserRepository: NewSQLUserRepository(db, log)}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.DB.Driver)
}
