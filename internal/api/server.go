// Package api exposes the document preparation pipeline over HTTP:
// async job submission, sync processing, job status, and embedding stats.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/docprep/internal/config"
	"github.com/dgallion1/docprep/internal/embedder"
	"github.com/dgallion1/docprep/internal/pipeline"
)

// Server is the HTTP API server for docprep.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	engine       *pipeline.Engine
	ollama       *embedder.OllamaClient
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. ollama may be nil
// when the configured strategy does not use embeddings.
func NewServer(orch *pipeline.Orchestrator, engine *pipeline.Engine, ollama *embedder.OllamaClient, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		engine:       engine,
		ollama:       ollama,
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

		r.Post("/api/ingest", s.handleIngest)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Post("/api/process", s.handleProcess)
		r.Get("/api/stats/embedding", s.handleEmbeddingStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
