package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/frahmantamala/safety-lms/api"
	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/auth"
	"github.com/frahmantamala/safety-lms/internal/transport"
	"github.com/frahmantamala/safety-lms/internal/transport/middleware"
	"github.com/frahmantamala/safety-lms/internal/transport/swagger"
)

// Routes bundles everything RegisterAllRoutes mounts.
type Routes struct {
	Health    *HealthHandler
	Auth      *auth.Handler
	LMS       *Handler
	Migration *MigrationHandler
	// Gatherer serves /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
	Metrics  internal.MetricsConfig
}

func RegisterAllRoutes(router *chi.Mux, routes Routes, logger *slog.Logger) {
	base := transport.NewBaseHandler(logger)

	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(base))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.Document)
	})
	router.Handle("/swagger/*", swagger.Handler())

	if routes.Gatherer != nil && routes.Metrics.Enabled {
		router.Handle(routes.Metrics.Path, promhttp.HandlerFor(routes.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", routes.Health.healthCheckHandler)
		r.Get("/ping", routes.Health.pingHandler)

		r.Group(func(pr chi.Router) {
			pr.Use(routes.Auth.AuthMiddleware)

			pr.Get("/me", routes.Auth.Me)

			pr.Route("/profiles", func(sr chi.Router) {
				sr.Get("/", routes.LMS.ListProfiles)
				sr.Get("/{id}", routes.LMS.GetProfile)
				sr.Patch("/{id}", routes.LMS.UpdateProfile)
			})

			pr.Get("/courses", routes.LMS.ListCourses)

			pr.Route("/enrollments", func(sr chi.Router) {
				sr.Get("/", routes.LMS.ListEnrollments)
				sr.Post("/", routes.LMS.CreateEnrollment)
				sr.Patch("/{id}", routes.LMS.UpdateEnrollment)
			})

			pr.Route("/progress", func(sr chi.Router) {
				sr.Get("/", routes.LMS.ListProgress)
				sr.Post("/", routes.LMS.CreateProgress)
				sr.Patch("/{id}", routes.LMS.UpdateProgress)
			})

			pr.Get("/analytics", routes.LMS.GetAnalytics)
			pr.Get("/plants/{id}/dashboard", routes.LMS.GetPlantDashboard)

			pr.Route("/admin/migration", func(ar chi.Router) {
				ar.Use(middleware.RequireGlobalAdmin(base))
				ar.Get("/", routes.Migration.GetConfig)
				ar.Patch("/", routes.Migration.UpdateConfig)
			})
		})
	})
}
