package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/FractiqLabs/StockEasy/internal/config"
	"github.com/FractiqLabs/StockEasy/internal/database"
	"github.com/FractiqLabs/StockEasy/internal/logger"
	"github.com/FractiqLabs/StockEasy/internal/repository"
	"github.com/FractiqLabs/StockEasy/internal/users"
	"github.com/FractiqLabs/StockEasy/pkg/roles"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the database schema up to date.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		migrationsDir, _ := cmd.Flags().GetString("dir")
		if migrationsDir == "" {
			migrationsDir = cfg.MigrationsDir
		}

		driver, err := database.ForName(cfg.DatabaseDriver)
		if err != nil {
			return err
		}
		db, err := driver.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := driver.Bootstrap(db, cfg.DatabaseURL, migrationsDir, logger.NewLogger()); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		return nil
	},
}

// CreateAdminCmd provisions a credential. There is no self-registration
// endpoint; this command is the only way accounts come into existence.
var CreateAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin or staff credential.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		roleName, _ := cmd.Flags().GetString("role")
		facility, _ := cmd.Flags().GetInt64("facility")

		role := roles.Role(roleName)
		if !role.IsValid() {
			return fmt.Errorf("role must be %q or %q", roles.Admin, roles.Staff)
		}
		if username == "" || len(password) < 6 {
			return fmt.Errorf("username is required and password must be at least 6 characters")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		driver, err := database.ForName(cfg.DatabaseDriver)
		if err != nil {
			return err
		}
		db, err := driver.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := driver.Bootstrap(db, cfg.DatabaseURL, cfg.MigrationsDir, logger.NewLogger()); err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		var facilityID *int64
		if cmd.Flags().Changed("facility") {
			facilityID = &facility
		}

		userRepo := users.NewRepository(repository.NewRepository(db, driver))
		if err := userRepo.PersistUser(username, hash, role, facilityID); err != nil {
			return err
		}

		fmt.Printf("Created %s credential %q\n", role, username)
		return nil
	},
}

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:   "stockeasy",
		Short: "StockEasy equipment tracking service",
	}
	MigrateCmd.Flags().String("dir", "", "Directory containing the migration files")
	CreateAdminCmd.Flags().String("username", "", "Login username")
	CreateAdminCmd.Flags().String("password", "", "Login password")
	CreateAdminCmd.Flags().String("role", "admin", "Credential role (admin or staff)")
	CreateAdminCmd.Flags().Int64("facility", 0, "Facility the credential is scoped to")
	rootCmd.AddCommand(MigrateCmd, CreateAdminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// A subcommand invocation is done here; the HTTP server only starts
	// when the binary runs bare.
	if len(os.Args) > 1 {
		os.Exit(0)
	}
}
