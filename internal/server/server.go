package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/optcoach/internal/service"
	"github.com/go-chi/chi/v5"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *service.Service
	db     Pinger
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(svc *service.Service, db Pinger, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		db:     db,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(Recover(s.log))
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))

		r.Post("/programs/generate", s.handleGenerate)
		r.Get("/programs/{id}", s.handleGetProgram)
		r.Post("/programs/{id}/complete", s.handleCompleteProgram)
		r.Get("/clients/{id}/programs", s.handleClientPrograms)

		r.Get("/templates", s.handleListTemplates)
		r.Get("/templates/{id}", s.handleGetTemplate)
		r.Get("/templates/{id}/preview", s.handlePreviewTemplate)
		r.Get("/guidelines", s.handleGuidelines)
		r.Get("/exercises", s.handleExercises)

		r.Get("/generation-logs", s.handleGenerationLogs)
	})
}

// SetMCP mounts the MCP streamable HTTP handler at /mcp behind the API key.
func (s *Server) SetMCP(h http.Handler) {
	s.router.With(APIKeyAuth(s.apiKey)).Handle("/mcp", h)
}
