package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"pathways/internal/controller"
	"pathways/internal/handlers"
	"pathways/internal/handlers/api"
	"pathways/internal/metrics"
	"pathways/internal/middleware"
	"pathways/internal/models"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(backend controller.Backend, catalog models.Catalog, checks ...handlers.ProbeCheck) {
	ctrl := controller.New(backend, catalog)

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(ctrl, s.Cfg)
	recommendationHandler := handlers.NewRecommendationHandler(ctrl, s.Cfg)
	probeHandler := handlers.NewProbeHandler(checks...)
	apiPathwayHandler := api.NewPathwayHandler(ctrl)
	apiRecommendationHandler := api.NewRecommendationHandler(ctrl)
	requireSession := middleware.RequireSession(s.Cache)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Pages
	s.App.Get("/", pageHandler.Index)
	s.App.Get(s.Cfg.DashboardPath, pageHandler.Dashboard)
	s.App.Get("/pathway/:pathway", requireSession, pageHandler.Pathway)

	// HTMX fragments
	s.App.Post("/pathway/:pathway/submit", requireSession, recommendationHandler.Submit)
	s.App.Post("/recommendations/:handle/save", requireSession, recommendationHandler.Save)
	s.App.Get("/recommendations/:handle", requireSession, recommendationHandler.ShowDetails)
	s.App.Delete("/modal", requireSession, recommendationHandler.CloseModal)

	// JSON API
	apiGroup := s.App.Group("/api", requireSession)
	apiGroup.Get("/pathways", apiPathwayHandler.List)
	apiGroup.Post("/pathways/:pathway/submit", apiPathwayHandler.Submit)
	apiGroup.Post("/recommendations/:handle/save", apiRecommendationHandler.Save)
	apiGroup.Get("/recommendations/:handle", apiRecommendationHandler.Details)
	apiGroup.Delete("/modal", apiRecommendationHandler.CloseModal)
}
