package store

import (
	"errors"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. SQLITE_BUSY and SQLITE_LOCKED
// indicate contention on the database file and are worth retrying; every
// other error is final.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return Retryable
		}
	}

	return NonRetryable
}

// ConflictColumn implements [ErrorClassificator]. SQLite reports unique
// violations as SQLITE_CONSTRAINT_UNIQUE with a message naming the column
// ("UNIQUE constraint failed: users.username").
func (c *SQLiteErrorClassifier) ConflictColumn(err error) string {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return ""
	}
	if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique && sqliteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
		return ""
	}

	msg := sqliteErr.Error()
	switch {
	case strings.Contains(msg, FieldUsername):
		return FieldUsername
	case strings.Contains(msg, FieldEmail):
		return FieldEmail
	}
	return ""
}
