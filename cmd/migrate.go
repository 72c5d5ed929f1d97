package cmd

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/safety-lms/db"
	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/database"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "run the embedded sql migrations against database.source",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// the goose migrations are postgres sql; sqlite schemas come from the models
	if cfg.Database.GetDriver() == internal.DriverSQLite {
		if migrateRollback {
			return fmt.Errorf("rollback is not supported for %s", internal.DriverSQLite)
		}
		gormDB, err := database.OpenGorm(cfg.Database)
		if err != nil {
			return err
		}
		return database.AutoMigrate(gormDB)
	}

	sqlDB, err := goose.OpenDBWithDriver(database.SQLDriverName(cfg.Database.GetDriver()), cfg.Database.GetDSN())
	if err != nil {
		return fmt.Errorf("goose: failed to open DB: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(db.Migrations)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: %w", err)
	}

	command := "up"
	if migrateRollback {
		command = "down"
	}
	if err := goose.RunContext(ctx, command, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
