package jobs

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

// Handler handles HTTP requests for the jobs module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new jobs handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers job routes available to any signed-in user.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/jobs", h.ListJobs)
	r.Get("/jobs/{jobID}", h.GetJob)
}

// RegisterRecruiterRoutes registers routes that require the recruiter role.
func (h *Handler) RegisterRecruiterRoutes(r chi.Router) {
	r.Post("/jobs", h.CreateJob)
	r.Patch("/jobs/{jobID}/status", h.UpdateHiringStatus)
	r.Get("/my-jobs", h.ListMyJobs)
}

// CreateJobRequest represents the request body for posting a job.
type CreateJobRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=255"`
	Description  string `json:"description" validate:"required"`
	Location     string `json:"location" validate:"required,min=1,max=255"`
	Requirements string `json:"requirements"`
	CompanyID    string `json:"company_id" validate:"required,uuid"`
}

// ToDomain converts the request to a domain model.
func (r *CreateJobRequest) ToDomain() *domain.Job {
	return &domain.Job{
		Title:        r.Title,
		Description:  r.Description,
		Location:     r.Location,
		Requirements: r.Requirements,
		CompanyID:    r.CompanyID,
	}
}

// UpdateHiringStatusRequest represents the request body for opening or
// closing a job.
type UpdateHiringStatusRequest struct {
	IsOpen *bool `json:"is_open" validate:"required"`
}

// ListJobs handles GET /jobs request. Results carry recruiter identity
// resolved from the directory.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	filter := Filter{}

	q := r.URL.Query()
	if v := q.Get("location"); v != "" {
		filter.Location = &v
	}
	if v := q.Get("company_id"); v != "" {
		filter.CompanyID = &v
	}
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if q.Get("open") == "true" {
		filter.OpenOnly = true
	}

	enriched, err := h.service.ListWithRecruiters(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, enriched)
}

// GetJob handles GET /jobs/{jobID} request.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	job, err := h.service.Get(r.Context(), jobID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, job)
}

// CreateJob handles POST /jobs request.
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	job := req.ToDomain()
	if err := h.service.Create(r.Context(), httputil.GetUserID(r.Context()), job); err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusCreated, job)
}

// UpdateHiringStatus handles PATCH /jobs/{jobID}/status request.
func (h *Handler) UpdateHiringStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	var req UpdateHiringStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	job, err := h.service.UpdateHiringStatus(r.Context(), httputil.GetUserID(r.Context()), jobID, *req.IsOpen)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, job)
}

// ListMyJobs handles GET /my-jobs request.
func (h *Handler) ListMyJobs(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.ListByRecruiter(r.Context(), httputil.GetUserID(r.Context()))
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
	case errors.Is(err, ErrNotJobOwner):
		httputil.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrCompanyNotFound):
		httputil.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("internal error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
