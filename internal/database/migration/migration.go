package migration

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres database driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source
)

// Migrate applies every pending migration from migrationsPath against
// the postgres database at dbURL. A no-change result is not an error.
func Migrate(dbURL string, migrationsPath string, verbose bool, log *zap.Logger) error {
	log.Info("Running database migration")

	dbMigrate, err := migrate.New(migrationsPath, dbURL)
	if err != nil {
		return err
	}
	dbMigrate.Log = NewLogger(log, verbose)

	if err := dbMigrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database migration: no change needed")
			return nil
		}
		log.Error("Database migration failed", zap.Error(err))
		return err
	}

	return nil
}

// Logger adapts zap to the migrate.Logger interface.
type Logger struct {
	logger  *zap.Logger
	verbose bool
}

func NewLogger(logger *zap.Logger, verbose bool) *Logger {
	return &Logger{
		logger:  logger,
		verbose: verbose,
	}
}

func (l *Logger) Printf(format string, v ...any) {
	l.logger.Sugar().Infof("DB Migration: "+format, v...)
}

func (l *Logger) Verbose() bool {
	return l.verbose
}
