package savedjobs

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hirewire/jobboard/internal/pkg/httputil"
)

// Handler handles HTTP requests for the saved-jobs module.
type Handler struct {
	service *Service
}

// NewHandler creates a new saved-jobs handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers saved-job routes. All of them require a
// signed-in session.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/jobs/{jobID}/save", h.ToggleSave)
	r.Get("/saved-jobs", h.ListSaved)
}

// ToggleResponse reports the bookmark state after a toggle.
type ToggleResponse struct {
	Saved bool `json:"saved"`
}

// ToggleSave handles POST /jobs/{jobID}/save request. Calling it twice
// returns the bookmark to its original state.
func (h *Handler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	saved, err := h.service.Toggle(r.Context(), httputil.GetUserID(r.Context()), jobID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, ToggleResponse{Saved: saved})
}

// ListSaved handles GET /saved-jobs request.
func (h *Handler) ListSaved(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.List(r.Context(), httputil.GetUserID(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, found)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrJobNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("internal error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
