package repository

import (
	"database/sql"
	"fmt"

	"github.com/FractiqLabs/StockEasy/internal/database"

	"github.com/doug-martin/goqu/v9"
)

// Repository bundles the raw connection with the dialect-aware goqu
// wrapper. Feature repositories embed a pointer to it.
type Repository struct {
	DB            *sql.DB
	GoquDBWrapper *goqu.Database
	driver        database.Driver
}

func NewRepository(db *sql.DB, driver database.Driver) *Repository {
	return &Repository{
		DB:            db,
		GoquDBWrapper: goqu.New(driver.Dialect(), db),
		driver:        driver,
	}
}

// IsUniqueViolation delegates error classification to the backend driver
// so callers never branch on which database they are talking to.
func (r *Repository) IsUniqueViolation(err error) bool {
	return r.driver.IsUniqueViolation(err)
}

// WithTransaction runs fn inside a transaction, rolling back on error or
// panic and committing otherwise.
func (r *Repository) WithTransaction(fn func(tx *goqu.TxDatabase) error) (err error) {
	rawTx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	tx := goqu.NewTx(r.driver.Dialect(), rawTx)
	defer func() {
		if p := recover(); p != nil {
			rawTx.Rollback()
			panic(p)
		} else if err != nil {
			rawTx.Rollback()
		} else {
			err = rawTx.Commit()
		}
	}()

	err = fn(tx)
	return
}
