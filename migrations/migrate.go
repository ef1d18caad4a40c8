// Package migrations embeds the SQL schema migrations and applies them with
// goose. The same migration set serves both SQL backends; the goose dialect
// is chosen from the configured driver name.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate applies all pending migrations to db. driver is the application
// driver name ("postgres" or "sqlite").
func Migrate(db *sql.DB, driver string) error {
	goose.SetBaseFS(embedMigrations)

	dialect := "pgx"
	if driver == "sqlite" {
		dialect = "sqlite3"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
