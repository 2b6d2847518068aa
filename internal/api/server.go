package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docpad/internal/config"
	"github.com/dgallion1/docpad/internal/docio"
	"github.com/dgallion1/docpad/internal/latency"
	"github.com/dgallion1/docpad/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docpad.
type Server struct {
	router       chi.Router
	docs         *docio.Service
	orchestrator *pipeline.Orchestrator
	stats        *latency.Tracker
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(docs *docio.Service, orch *pipeline.Orchestrator, stats *latency.Tracker, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		docs:         docs,
		orchestrator: orch,
		stats:        stats,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/decode", s.handleDecode)
		r.Post("/api/encode", s.handleEncode)
		r.Post("/api/profile", s.handleProfile)

		r.Post("/api/batch/decode", s.handleBatchDecode)
		r.Get("/api/batch/{jobID}", s.handleBatchStatus)

		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
