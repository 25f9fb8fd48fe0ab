// Package admin provides the administrative proxy surface: privileged user
// operations forwarded to the identity directory and privileged job
// operations issued directly against storage.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hirewire/jobboard/internal/directory"
	"github.com/hirewire/jobboard/internal/domain"
	"github.com/hirewire/jobboard/internal/jobs"
	"github.com/hirewire/jobboard/internal/pkg/httputil"
)

// Directory is the slice of the identity-directory client the admin surface
// forwards to.
type Directory interface {
	ListUsers(ctx context.Context) ([]domain.DirectoryUser, error)
	DeleteUser(ctx context.Context, id string) error
	BanUser(ctx context.Context, id string) error
	UnbanUser(ctx context.Context, id string) error
}

// JobStore is the privileged job storage the admin surface operates on. It
// is backed by the elevated connection pool when one is configured.
type JobStore interface {
	GetJobByID(ctx context.Context, id string) (*domain.Job, error)
	DeleteJob(ctx context.Context, id string) (int64, error)
	CountJobs(ctx context.Context) (int, error)
}

// JobLister lists jobs joined with recruiter identity.
type JobLister interface {
	ListWithRecruiters(ctx context.Context, filter jobs.Filter) ([]domain.EnrichedJob, error)
}

// Handler handles HTTP requests for the admin module.
type Handler struct {
	directory Directory
	jobStore  JobStore
	jobLister JobLister
}

// NewHandler creates a new admin handler.
func NewHandler(dir Directory, jobStore JobStore, jobLister JobLister) *Handler {
	return &Handler{
		directory: dir,
		jobStore:  jobStore,
		jobLister: jobLister,
	}
}

// RegisterRoutes registers the admin surface. The paths are part of the
// public contract and keep their historical shape. Callers must gate the
// router with admin-role middleware.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/get-clerk-users", h.ListDirectoryUsers)
	r.Delete("/delete-user/{userId}", h.DeleteUser)
	r.Post("/ban-user/{userId}", h.BanUser)
	r.Post("/unban-user/{userId}", h.UnbanUser)
	r.Get("/get-jobs", h.ListJobs)
	r.Get("/test-supabase", h.ProbeStorage)
	r.Delete("/delete-job/{jobId}", h.DeleteJob)
}

// ListDirectoryUsers handles GET /get-clerk-users request.
func (h *Handler) ListDirectoryUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.ListUsers(r.Context())
	if err != nil {
		h.handleDirectoryError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, users)
}

// DeleteUser handles DELETE /delete-user/{userId} request.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	if err := h.directory.DeleteUser(r.Context(), userID); err != nil {
		h.handleDirectoryError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, map[string]string{"deleted": userID})
}

// BanUser handles POST /ban-user/{userId} request.
func (h *Handler) BanUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	if err := h.directory.BanUser(r.Context(), userID); err != nil {
		h.handleDirectoryError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, map[string]string{"banned": userID})
}

// UnbanUser handles POST /unban-user/{userId} request.
func (h *Handler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	if err := h.directory.UnbanUser(r.Context(), userID); err != nil {
		h.handleDirectoryError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, map[string]string{"unbanned": userID})
}

// ListJobs handles GET /get-jobs request. Every job is returned, open or
// closed, joined with recruiter identity.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	enriched, err := h.jobLister.ListWithRecruiters(r.Context(), jobs.Filter{})
	if err != nil {
		slog.Error("admin list jobs", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httputil.Success(w, http.StatusOK, enriched)
}

// ProbeStorageResponse reports the storage connectivity probe result.
type ProbeStorageResponse struct {
	Count int `json:"count"`
}

// ProbeStorage handles GET /test-supabase request: a cheap round-trip that
// proves the privileged storage connection works.
func (h *Handler) ProbeStorage(w http.ResponseWriter, r *http.Request) {
	count, err := h.jobStore.CountJobs(r.Context())
	if err != nil {
		slog.Error("storage probe failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "storage probe failed")
		return
	}

	httputil.Success(w, http.StatusOK, ProbeStorageResponse{Count: count})
}

// DeleteJobResponse reports the outcome of a privileged job deletion.
type DeleteJobResponse struct {
	Deleted *domain.Job `json:"deleted"`
	Count   int64       `json:"count"`
}

// DeleteJob handles DELETE /delete-job/{jobId} request. A missing job is a
// not-found; a job that exists but whose delete affects zero rows is
// reported as a server error so the two cases stay distinguishable.
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")

	job, err := h.jobStore.GetJobByID(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			httputil.Error(w, http.StatusNotFound, "job not found")
			return
		}
		slog.Error("admin read job", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	count, err := h.jobStore.DeleteJob(r.Context(), jobID)
	if err != nil {
		slog.Error("admin delete job", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if count == 0 {
		slog.Error("admin delete job affected no rows", "job_id", jobID)
		httputil.Error(w, http.StatusInternalServerError, "delete affected no rows")
		return
	}

	httputil.Success(w, http.StatusOK, DeleteJobResponse{Deleted: job, Count: count})
}

func (h *Handler) handleDirectoryError(w http.ResponseWriter, err error) {
	var apiErr *directory.APIError
	switch {
	case errors.Is(err, directory.ErrUserNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, directory.ErrNotConfigured):
		httputil.Error(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &apiErr):
		httputil.Error(w, http.StatusBadGateway, apiErr.Message)
	default:
		slog.Error("directory request failed", "error", err)
		httputil.Error(w, http.StatusBadGateway, "directory unavailable")
	}
}
