package applications

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/hirewire/jobboard/internal/domain"
	"github.com/hirewire/jobboard/internal/pkg/httputil"
)

// Handler handles HTTP requests for the applications module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new applications handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterCandidateRoutes registers routes that require the candidate role.
func (h *Handler) RegisterCandidateRoutes(r chi.Router) {
	r.Post("/jobs/{jobID}/apply", h.Apply)
	r.Get("/applications", h.ListOwn)
}

// RegisterRecruiterRoutes registers routes that require the recruiter role.
func (h *Handler) RegisterRecruiterRoutes(r chi.Router) {
	r.Get("/jobs/{jobID}/applications", h.ListForJob)
	r.Patch("/applications/{applicationID}/status", h.UpdateStatus)
}

// ApplyRequest represents the request body for applying to a job.
type ApplyRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=255"`
	Experience int    `json:"experience" validate:"min=0,max=80"`
	Skills     string `json:"skills" validate:"required"`
	Education  string `json:"education" validate:"required"`
	ResumeURL  string `json:"resume_url" validate:"omitempty,url"`
}

// UpdateStatusRequest represents the request body for moving an application
// through the pipeline.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=applied interviewing hired rejected"`
}

// Apply handles POST /jobs/{jobID}/apply request.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	application := &domain.Application{
		JobID:      jobID,
		Name:       req.Name,
		Experience: req.Experience,
		Skills:     req.Skills,
		Education:  req.Education,
		ResumeURL:  req.ResumeURL,
	}
	if err := h.service.Apply(r.Context(), httputil.GetUserID(r.Context()), application); err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusCreated, application)
}

// ListOwn handles GET /applications request.
func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.ListOwn(r.Context(), httputil.GetUserID(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, found)
}

// ListForJob handles GET /jobs/{jobID}/applications request.
func (h *Handler) ListForJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	found, err := h.service.ListForJob(r.Context(), httputil.GetUserID(r.Context()), jobID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, found)
}

// UpdateStatus handles PATCH /applications/{applicationID}/status request.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	application, err := h.service.UpdateStatus(r.Context(),
		httputil.GetUserID(r.Context()),
		applicationID,
		domain.ApplicationStatus(req.Status),
	)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, application)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrApplicationNotFound), errors.Is(err, ErrJobNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyApplied):
		httputil.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrJobClosed):
		httputil.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotJobOwner):
		httputil.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidStatus):
		httputil.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("internal error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
