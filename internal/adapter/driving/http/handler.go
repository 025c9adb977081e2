// Package httphandler is the HTTP driving adapter. It authenticates callers,
// validates all path and query parameters against their closed enumerations,
// and is the only place internal failures are translated into status codes.
package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/softspoken/nvcpractice/internal/application"
	"github.com/softspoken/nvcpractice/internal/domain/model"
	"github.com/softspoken/nvcpractice/internal/domain/port/driven"
)

// Handler serves the REST API. It holds no state of its own; it composes the
// key service in front of the exercise store and projector.
type Handler struct {
	exercises driven.ExerciseStore
	keys      *application.KeyService
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(exercises driven.ExerciseStore, keys *application.KeyService, logger *slog.Logger) *Handler {
	return &Handler{
		exercises: exercises,
		keys:      keys,
		logger:    logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware. Content routes require a valid API
// key; the health endpoint is open.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/exercises", h.requireKey(h.ListExercises))
	mux.HandleFunc("GET /api/v1/exercises/{id}", h.requireKey(h.GetExercise))
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// ListExercises returns exercises matching the query filters, projected into
// the requested language shape.
func (h *Handler) ListExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter model.ExerciseFilter
	if v := q.Get("category"); v != "" {
		category, err := model.ParseCategory(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Category = category
	}
	if v := q.Get("difficulty"); v != "" {
		difficulty, err := model.ParseDifficulty(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Difficulty = difficulty
	}
	if v := q.Get("audience"); v != "" {
		audience, err := model.ParseAudience(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Audience = audience
	}

	lang, ok := h.parseLang(w, q.Get("lang"))
	if !ok {
		return
	}

	exercises, err := h.exercises.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list exercises", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]application.ProjectedExercise, 0, len(exercises))
	for _, ex := range exercises {
		projected, err := application.ProjectExercise(ex, lang)
		if err != nil {
			h.logger.Error("failed to project exercise", "id", ex.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		resp = append(resp, projected)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetExercise returns a single exercise by id. A malformed id is a
// validation failure, never a not-found.
func (h *Handler) GetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise id")
		return
	}

	lang, ok := h.parseLang(w, r.URL.Query().Get("lang"))
	if !ok {
		return
	}

	ex, err := h.exercises.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get exercise", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if ex == nil {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}

	projected, err := application.ProjectExercise(*ex, lang)
	if err != nil {
		h.logger.Error("failed to project exercise", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, projected)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// parseLang validates an optional language code, writing a 400 on failure.
// An empty raw value means "keep both languages".
func (h *Handler) parseLang(w http.ResponseWriter, raw string) (model.Language, bool) {
	if raw == "" {
		return "", true
	}
	lang, err := model.ParseLanguage(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return lang, true
}

// parseID accepts decimal digits only; signs, spaces, and any other shape
// are rejected.
func parseID(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("empty id")
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, errors.New("id must be digits only")
		}
	}
	return strconv.ParseInt(s, 10, 64)
}
