// Package companies provides HTTP handlers and business logic for employers.
package companies

import (
	"context"
	"errors"
	"fmt"

	"github.com/hirewire/jobboard/internal/domain"
)

var (
	// ErrCompanyNotFound is returned when a company does not exist.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrCompanyExists is returned when creating a company whose name is
	// already taken.
	ErrCompanyExists = errors.New("company already exists")
)

// Repository defines the interface for company data operations.
type Repository interface {
	CreateCompany(ctx context.Context, company *domain.Company) error
	GetCompanyByID(ctx context.Context, id string) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}

// Service contains business logic for companies.
type Service struct {
	repo Repository
}

// NewService creates a new companies service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new company.
func (s *Service) Create(ctx context.Context, company *domain.Company) error {
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		if errors.Is(err, ErrCompanyExists) {
			return err
		}
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

// Get retrieves a company by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Company, error) {
	return s.repo.GetCompanyByID(ctx, id)
}

// List retrieves all companies.
func (s *Service) List(ctx context.Context) ([]domain.Company, error) {
	return s.repo.ListCompanies(ctx)
}
