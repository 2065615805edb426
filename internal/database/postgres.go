package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/FractiqLabs/StockEasy/internal/database/migration"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // register goqu dialect
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type PostgresDriver struct{}

func (d *PostgresDriver) Dialect() string {
	return "postgres"
}

func (d *PostgresDriver) Open(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("could not connect to postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping the database: %w", err)
	}

	return db, nil
}

func (d *PostgresDriver) Bootstrap(_ *sql.DB, url string, migrationsDir string, log *zap.Logger) error {
	return migration.Migrate(url, fmt.Sprintf("file://%s", migrationsDir), true, log)
}

func (d *PostgresDriver) IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
