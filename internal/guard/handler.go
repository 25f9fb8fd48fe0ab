package guard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hirewire/jobboard/internal/pkg/httputil"
)

// Handler exposes the guard engine over HTTP so clients can ask for the
// verdict of a navigation before performing it.
type Handler struct {
	guard   *Guard
	resolve ResolverFunc
}

// NewHandler creates a new guard handler.
func NewHandler(g *Guard, resolve ResolverFunc) *Handler {
	return &Handler{guard: g, resolve: resolve}
}

// RegisterRoutes registers guard routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/guard", h.Decide)
}

// Decide handles GET /guard?path=<destination>.
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		httputil.Error(w, http.StatusBadRequest, "path query parameter is required")
		return
	}

	decision := h.guard.Evaluate(h.resolve(r), path)
	httputil.Success(w, http.StatusOK, decision)
}
