package store

import (
	"database/sql"

	"github.com/dkotelnikov/user-service/internal/logger"
	"github.com/dkotelnikov/user-service/migrations"
)

// DB wraps the shared *sql.DB handle together with the driver name it was
// opened with and the error classifier for that driver. Both SQL backends
// (postgres, sqlite) produce a *DB; the repository layer is driver-agnostic.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all embedded schema migrations for the driver this
// connection was opened with.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
