package config

import (
	"fmt"
	"os"
)

// Config is everything the process reads from the environment. Values
// come from the real environment first, .env second (godotenv is loaded
// in main before this runs and never overwrites existing variables).
type Config struct {
	DatabaseDriver string // "postgres" or "sqlite"
	DatabaseURL    string // connection string or sqlite file path
	MigrationsDir  string
	Host           string
	Port           string
	Environment    string
	StaffPasscode  string // fallback staff credential when no facility staff users exist
	SessionTTLH    int
}

const defaultSessionTTLHours = 96

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", "equipment.db"),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		StaffPasscode:  os.Getenv("STAFF_PASSCODE"),
		SessionTTLH:    defaultSessionTTLHours,
	}

	// Production binds on all interfaces, development stays local.
	if cfg.Environment == "production" {
		cfg.Host = getEnv("APP_HOST", "0.0.0.0")
	} else {
		cfg.Host = getEnv("APP_HOST", "127.0.0.1")
	}

	if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

func (c *Config) ListenAddr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
