package database

import (
	"database/sql"
	"testing"

	"go.uber.org/zap"
)

// NewTestDB creates a fresh in-memory sqlite database with the schema
// applied, closed automatically when the test finishes.
func NewTestDB(t *testing.T) (*sql.DB, Driver) {
	t.Helper()

	driver := &SQLiteDriver{}
	db, err := driver.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	// Every pooled connection to ":memory:" is a separate database, so
	// the pool must stay at one connection.
	db.SetMaxOpenConns(1)

	if err := driver.Bootstrap(db, "", "", zap.NewNop()); err != nil {
		db.Close()
		t.Fatalf("creating test database schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db, driver
}
