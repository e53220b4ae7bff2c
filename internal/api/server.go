package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/docsum/internal/config"
	"github.com/dgallion1/docsum/internal/document"
	"github.com/dgallion1/docsum/internal/pipeline"
	"github.com/dgallion1/docsum/internal/summarize"
)

// Processor runs documents through the summarization pipeline.
// *pipeline.Orchestrator satisfies it.
type Processor interface {
	ProcessAs(ctx context.Context, path, name string) pipeline.Result
	Count(path, name string) (*document.Document, error)
}

// Server is the HTTP API server for docsum.
type Server struct {
	router chi.Router
	proc   Processor
	llm    *summarize.Client
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server. llm may be nil, in which
// case the stats endpoint reports unavailable.
func NewServer(proc Processor, llm *summarize.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		proc: proc,
		llm:  llm,
		log:  log,
		cfg:  cfg,
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
		r.Use(AuthMiddleware(s.cfg.ServerAPIKey, s.log))

		r.Post("/api/tokens", s.handleTokens)
		r.Post("/api/summarize", s.handleSummarize)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
