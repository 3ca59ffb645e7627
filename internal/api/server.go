package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splittab/splittab-backend/internal/api/handlers"
	"github.com/splittab/splittab-backend/internal/api/middleware"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	MetricsEnabled bool
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		MetricsEnabled: true,
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	repo       storage.Repository
}

// NewServer creates a new API server.
func NewServer(cfg Config, repo storage.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		logger: logger,
		repo:   repo,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	corsConfig := middleware.CORSConfig{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}
	s.router.Use(middleware.CORS(corsConfig))

	s.router.Use(middleware.Logging(s.logger))

	if s.config.MetricsEnabled {
		s.router.Use(middleware.Metrics())
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.Get("/health", healthHandler.ServeHTTP)

	if s.config.MetricsEnabled {
		s.router.Handle("/metrics", promhttp.Handler())
	}

	s.router.Route("/api", func(r chi.Router) {
		// Bills
		billsHandler := handlers.NewBillsHandler(s.repo)
		r.Post("/bills", billsHandler.Create)
		r.Get("/bills", billsHandler.List)
		r.Get("/bills/{id}", billsHandler.Get)
		r.Put("/bills/{id}", billsHandler.Update)
		r.Delete("/bills/{id}", billsHandler.Delete)

		// People
		peopleHandler := handlers.NewPeopleHandler(s.repo)
		r.Post("/bills/{id}/people", peopleHandler.Create)
		r.Delete("/bills/{id}/people/{personID}", peopleHandler.Delete)

		// Items
		itemsHandler := handlers.NewItemsHandler(s.repo)
		r.Post("/bills/{id}/items", itemsHandler.Create)
		r.Put("/bills/{id}/items/{itemID}", itemsHandler.Update)
		r.Delete("/bills/{id}/items/{itemID}", itemsHandler.Delete)

		// Computed views
		totalsHandler := handlers.NewTotalsHandler(s.repo)
		r.Get("/bills/{id}/totals", totalsHandler.Totals)
		r.Get("/bills/{id}/summary", totalsHandler.Summary)
		r.Get("/bills/{id}/breakdowns", totalsHandler.Breakdowns)

		// Exports
		exportHandler := handlers.NewExportHandler(s.repo)
		r.Get("/bills/{id}/export/csv", exportHandler.CSV)
		r.Get("/bills/{id}/export/text", exportHandler.Text)

		// Stats
		statsHandler := handlers.NewStatsHandler(s.repo)
		r.Get("/stats", statsHandler.ServeHTTP)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
