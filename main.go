package main

import (
	"context"
	"log"

	"github.com/FractiqLabs/StockEasy/cmd"
	"github.com/FractiqLabs/StockEasy/internal/config"
	"github.com/FractiqLabs/StockEasy/internal/container"
	"github.com/FractiqLabs/StockEasy/internal/database"
	"github.com/FractiqLabs/StockEasy/internal/logger"
	"github.com/FractiqLabs/StockEasy/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	driver, err := database.ForName(cfg.DatabaseDriver)
	if err != nil {
		zapLogger.Fatal("Unknown database driver", zap.Error(err))
	}

	db, err := driver.Open(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("Could not connect to the database", zap.Error(err))
	}
	defer db.Close()

	if err := driver.Bootstrap(db, cfg.DatabaseURL, cfg.MigrationsDir, zapLogger); err != nil {
		zapLogger.Fatal("Could not bootstrap the database schema", zap.Error(err))
	}

	zapLogger.Info("Connected to the database", zap.String("driver", cfg.DatabaseDriver))

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	appContainer := container.NewAppContainer(db, driver, cfg)

	router := gin.New()
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, appContainer, zapLogger)

	zapLogger.Info("Starting server", zap.String("addr", cfg.ListenAddr()))
	if err := router.Run(cfg.ListenAddr()); err != nil {
		zapLogger.Fatal("Server stopped", zap.Error(err))
	}
}
