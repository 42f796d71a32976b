package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"votepulse/internal/analytics"
	"votepulse/internal/config"
	"votepulse/internal/handlers"
	"votepulse/internal/identity"
	"votepulse/internal/ledger"
	"votepulse/internal/middleware"
	"votepulse/internal/store"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(st store.Store, catalog *config.Catalog) {
	ldgr := ledger.New(st)
	recorder := analytics.New(st)

	// Initialize middleware
	visitorMiddleware := middleware.NewVisitorMiddleware(identity.NewProvider(s.Cfg.IdentitySalt))
	adminMiddleware := middleware.NewAdminMiddleware(s.Cfg.AdminKey)

	// Initialize handlers
	voteHandler := handlers.NewVoteHandler(ldgr, recorder, catalog)
	analyticsHandler := handlers.NewAnalyticsHandler(recorder, catalog)
	dashboardHandler := handlers.NewDashboardHandler(recorder)
	adminHandler := handlers.NewAdminHandler(ldgr, recorder, catalog)
	healthHandler := handlers.NewHealthHandler(st)

	// Vote routes - visitor identity required
	s.App.Post("/api/projects/:key/vote", visitorMiddleware.Resolve, voteHandler.Toggle)
	s.App.Get("/api/projects/:key/vote", visitorMiddleware.Resolve, voteHandler.Status)

	// Activity ingestion - best-effort, anonymous
	s.App.Post("/api/visit", analyticsHandler.Visit)
	s.App.Post("/api/projects/:key/view", analyticsHandler.View)
	s.App.Post("/api/beacon", analyticsHandler.Beacon)

	// Dashboard reads
	s.App.Get("/api/dashboard", dashboardHandler.Day)
	s.App.Get("/api/dashboard/trend", dashboardHandler.Trend)

	// Admin routes - destructive, key-gated, two-step confirmation
	s.App.Post("/admin/reset", adminMiddleware.RequireAdmin, adminHandler.RequestReset)
	s.App.Post("/admin/reset/confirm", adminMiddleware.RequireAdmin, adminHandler.ConfirmReset)

	// Operational surface
	s.App.Get("/health", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
