package database

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // register goqu dialect
	"go.uber.org/zap"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteDriver struct{}

func (d *SQLiteDriver) Dialect() string {
	return "sqlite3"
}

func (d *SQLiteDriver) Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	return db, nil
}

// Bootstrap applies the embedded DDL. Every statement is idempotent, so
// there is no migration versioning for the sqlite backend.
func (d *SQLiteDriver) Bootstrap(db *sql.DB, _ string, _ string, log *zap.Logger) error {
	log.Info("Ensuring sqlite schema")
	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("creating sqlite schema: %w", err)
	}
	return nil
}

func (d *SQLiteDriver) IsUniqueViolation(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
