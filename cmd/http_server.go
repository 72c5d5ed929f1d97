package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/safety-lms/api"
	"github.com/frahmantamala/safety-lms/internal/auth"
	"github.com/frahmantamala/safety-lms/internal/transport/rest"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	deps, err := initializeDataLayer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	lg := deps.Logger

	if _, err := api.Load(context.Background()); err != nil {
		lg.Error("openapi document rejected", "error", err)
		os.Exit(1)
	}

	router, err := setupRoutes(deps)
	if err != nil {
		lg.Error("failed to set up routes", "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	lg.Info("starting HTTP server",
		"address", addr,
		"driver", cfg.Database.GetDriver(),
		"use_new_service", deps.Manager.ShouldUseNewService())

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		lg.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			lg.Error("server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			lg.Error("server failed to start", "error", err)
			_ = deps.Close()
			os.Exit(1)
		}
	}

	if err := deps.Close(); err != nil {
		lg.Error("database close error", "error", err)
	}
	lg.Info("server stopped")
}

func setupRoutes(deps *DataLayer) (*chi.Mux, error) {
	gormSQL, err := deps.Gorm.DB()
	if err != nil {
		return nil, err
	}

	tokens := auth.NewJWTTokenGenerator(deps.Config.Security.JWTSecret, deps.Config.Security.GetAccessTokenDuration())
	authService := auth.NewService(tokens, deps.Facade, deps.Logger)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.Routes{
		Health: rest.NewHealthHandler(map[string]rest.Pinger{
			"next":   gormSQL,
			"legacy": deps.Legacy,
		}),
		Auth:      auth.NewHandler(authService),
		LMS:       rest.NewHandler(deps.Facade, deps.Logger),
		Migration: rest.NewMigrationHandler(deps.Manager, deps.Logger),
		Gatherer:  deps.Registry,
		Metrics:   deps.Config.Observability.Metrics,
	}, deps.Logger)
	return router, nil
}
