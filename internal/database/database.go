package database

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Driver hides which relational backend is in use. Callers get a
// connection, a goqu dialect name and backend-specific error
// classification, and never branch on backend identity themselves.
type Driver interface {
	// Dialect is the goqu dialect registered for this backend.
	Dialect() string
	Open(url string) (*sql.DB, error)
	// Bootstrap brings the schema up to date (migrations or embedded DDL).
	Bootstrap(db *sql.DB, url string, migrationsDir string, log *zap.Logger) error
	// IsUniqueViolation reports whether err is a unique-constraint failure.
	IsUniqueViolation(err error) bool
}

func ForName(name string) (Driver, error) {
	switch name {
	case "postgres":
		return &PostgresDriver{}, nil
	case "sqlite":
		return &SQLiteDriver{}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", name)
	}
}
