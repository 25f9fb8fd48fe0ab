package companies

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

// Handler handles HTTP requests for the companies module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new companies handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers company routes available to any signed-in user.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/companies", h.ListCompanies)
	r.Get("/companies/{companyID}", h.GetCompany)
}

// RegisterRecruiterRoutes registers routes that require the recruiter role.
func (h *Handler) RegisterRecruiterRoutes(r chi.Router) {
	r.Post("/companies", h.CreateCompany)
}

// CreateCompanyRequest represents the request body for registering a company.
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	LogoURL string `json:"logo_url" validate:"omitempty,url"`
}

// ListCompanies handles GET /companies request.
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, found)
}

// GetCompany handles GET /companies/{companyID} request.
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	company, err := h.service.Get(r.Context(), companyID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, company)
}

// CreateCompany handles POST /companies request.
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	company := &domain.Company{Name: req.Name, LogoURL: req.LogoURL}
	if err := h.service.Create(r.Context(), company); err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusCreated, company)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrCompanyNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrCompanyExists):
		httputil.Error(w, http.StatusConflict, err.Error())
	default:
		slog.Error("internal error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
