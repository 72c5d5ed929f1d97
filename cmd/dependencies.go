package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/database"
	"github.com/frahmantamala/safety-lms/internal/core/events"
	"github.com/frahmantamala/safety-lms/internal/dbservice"
	"github.com/frahmantamala/safety-lms/internal/migration"
	"github.com/frahmantamala/safety-lms/pkg/logger"
)

const metricsNamespace = "safety_lms"

// DataLayer is the wired facade plus the resources it owns.
type DataLayer struct {
	Config   *internal.Config
	Logger   *slog.Logger
	Gorm     *gorm.DB
	Legacy   *sqlx.DB
	Bus      *events.EventBus
	Registry *prometheus.Registry
	Manager  *migration.Manager
	Facade   *dbservice.Facade
}

func initializeDataLayer(cfg *internal.Config) (*DataLayer, error) {
	logger.Init(cfg.Observability.Logging.Env, cfg.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	gormDB, err := database.OpenGorm(cfg.Database)
	if err != nil {
		return nil, err
	}
	if cfg.Database.GetDriver() == internal.DriverSQLite {
		if err := database.AutoMigrate(gormDB); err != nil {
			return nil, err
		}
	}

	legacyDB, err := database.OpenSQLX(cfg.Database)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	bus := events.NewEventBus(lg)
	subscribeEventLog(bus, lg)

	manager := migration.NewManager(
		migration.FromAppConfig(cfg.Migration),
		lg,
		bus,
		migration.NewMetrics(registry, metricsNamespace),
	)

	facade := dbservice.NewFacade(
		dbservice.NewImplementation(dbservice.GormRepositories(gormDB), bus, lg.With("layer", migration.TargetNext)),
		dbservice.NewImplementation(dbservice.LegacyRepositories(legacyDB), bus, lg.With("layer", migration.TargetLegacy)),
		manager,
	)

	return &DataLayer{
		Config:   cfg,
		Logger:   lg,
		Gorm:     gormDB,
		Legacy:   legacyDB,
		Bus:      bus,
		Registry: registry,
		Manager:  manager,
		Facade:   facade,
	}, nil
}

// Close waits for in-flight event handlers and closes both pools.
func (d *DataLayer) Close() error {
	d.Bus.Wait()

	var errs []error
	if err := d.Legacy.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close legacy db: %w", err))
	}
	if sqlDB, err := d.Gorm.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close gorm db: %w", err))
		}
	}
	return errors.Join(errs...)
}
