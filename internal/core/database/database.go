// Package database opens the connections used by the next (gorm) and legacy (sqlx)
// data layers and translates driver errors into the storage sentinels.
package database

import (
	"fmt"
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	coursedm "github.com/frahmantamala/safety-lms/internal/core/datamodel/course"
	enrollmentdm "github.com/frahmantamala/safety-lms/internal/core/datamodel/enrollment"
	plantdm "github.com/frahmantamala/safety-lms/internal/core/datamodel/plant"
	profiledm "github.com/frahmantamala/safety-lms/internal/core/datamodel/profile"
	progressdm "github.com/frahmantamala/safety-lms/internal/core/datamodel/progress"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLDriverName returns the database/sql driver registered for a configured driver.
func SQLDriverName(driver string) string {
	if driver == internal.DriverSQLite {
		return "sqlite3"
	}
	return "pgx"
}

// OpenGorm opens the gorm connection of the next data layer.
func OpenGorm(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.GetDriver() {
	case internal.DriverSQLite:
		dialector = sqlite.Open(cfg.GetDSN())
	case internal.DriverPostgres:
		dialector = postgres.Open(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access gorm pool: %w", err)
	}
	applyPool(sqlDB.SetMaxOpenConns, sqlDB.SetMaxIdleConns, sqlDB.SetConnMaxLifetime, cfg)
	return db, nil
}

// OpenSQLX opens the sqlx connection of the legacy data layer on the legacy source.
func OpenSQLX(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect(SQLDriverName(cfg.GetDriver()), cfg.GetLegacyDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy db connection: %w", err)
	}
	applyPool(db.SetMaxOpenConns, db.SetMaxIdleConns, db.SetConnMaxLifetime, cfg)
	return db, nil
}

func applyPool(maxOpen, maxIdle func(int), lifetime func(time.Duration), cfg internal.DatabaseConfig) {
	if cfg.GetDriver() == internal.DriverSQLite {
		// sqlite memory databases exist per connection
		maxOpen(1)
		return
	}
	if cfg.MaxOpenConns > 0 {
		maxOpen(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		maxIdle(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		lifetime(cfg.ConnMaxLifetime)
	}
}

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&plantdm.Plant{},
		&profiledm.Profile{},
		&profiledm.AdminRole{},
		&coursedm.Course{},
		&enrollmentdm.Enrollment{},
		&progressdm.Progress{},
	}
}

// AutoMigrate creates the schema from the gorm models. Used for sqlite; postgres
// deployments run the goose migrations instead.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// OpenMemory opens an in-memory sqlite database with the full schema and returns
// the gorm handle and a sqlx handle over the same connection.
func OpenMemory() (*gorm.DB, *sqlx.DB, error) {
	db, err := OpenGorm(internal.DatabaseConfig{Driver: internal.DriverSQLite, Source: "file::memory:?_foreign_keys=on"})
	if err != nil {
		return nil, nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	return db, sqlx.NewDb(sqlDB, "sqlite3"), nil
}
