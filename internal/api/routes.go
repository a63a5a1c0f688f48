package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes. The limiter applies only to the
// public apply endpoint; operator endpoints (listing, status, export) are
// expected to sit behind network-level access control, matching the
// original deployment.
func SetupRoutes(h *Handlers, hc *HealthChecker, limiter *RateLimiter, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// CORS - the mobile client posts the application form cross-origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health checks (no rate limiting)
	r.Get("/health", hc.HandleHealth)
	r.Get("/health/live", hc.HandleLiveness)
	r.Get("/health/ready", hc.HandleReadiness)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/waitlist", func(r chi.Router) {
		r.With(limiter.Middleware).Post("/apply", h.HandleApply)

		r.Get("/applications", h.HandleListApplications)
		r.Get("/applications/{id}", h.HandleGetApplication)
		r.Patch("/applications/{id}/status", h.HandleUpdateStatus)

		r.Get("/export", h.HandleExport)
		r.Get("/stats", h.HandleStats)
	})

	return r
}
