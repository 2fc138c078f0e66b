package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/claude/optcoach/internal/models"
	"github.com/claude/optcoach/internal/service"
	"github.com/claude/optcoach/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.log.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	resp, err := s.svc.Generate(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err, "failed to generate program")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := programID(w, r)
	if !ok {
		return
	}
	p, err := s.svc.Program(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err, "failed to load program")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCompleteProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := programID(w, r)
	if !ok {
		return
	}
	p, err := s.svc.CompleteProgram(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err, "failed to complete program")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleClientPrograms(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ClientPrograms(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, err, "failed to list programs")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.svc.Templates(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "failed to list templates")
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Template(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, err, "failed to load template")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handlePreviewTemplate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pv, err := s.svc.Preview(r.Context(), service.PreviewRequest{
		TemplateID: chi.URLParam(r, "id"),
		Split:      q.Get("split"),
		Phase:      q.Get("phase"),
		Level:      q.Get("level"),
	})
	if err != nil {
		s.writeServiceError(w, err, "failed to preview template")
		return
	}
	writeJSON(w, http.StatusOK, pv)
}

func (s *Server) handleGuidelines(w http.ResponseWriter, r *http.Request) {
	g, err := s.svc.Guidelines(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "failed to list guidelines")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	ex, err := s.svc.Exercises(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "failed to list exercises")
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleGenerationLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	logs, err := s.svc.GenerationLogs(r.Context(), r.URL.Query().Get("client_id"), limit)
	if err != nil {
		s.writeServiceError(w, err, "failed to query generation logs")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func programID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps service errors onto status codes. Unclassified
// errors are logged and reported with the generic message only.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, generic string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "details": ve.Fields})
	case errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrProgramNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrActiveProgramExists),
		errors.Is(err, service.ErrProgramNotActive):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		s.log.Error(generic, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": generic})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
