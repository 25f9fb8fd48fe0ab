// Package postgres provides PostgreSQL implementation of the companies repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hirewire/jobboard/internal/companies"
	"github.com/hirewire/jobboard/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// Repository implements the companies.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateCompany inserts a new company.
func (r *Repository) CreateCompany(ctx context.Context, company *domain.Company) error {
	query := `
		INSERT INTO companies (name, logo_url)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, company.Name, company.LogoURL).
		Scan(&company.ID, &company.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return companies.ErrCompanyExists
		}
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

// GetCompanyByID retrieves a company by its ID.
func (r *Repository) GetCompanyByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `SELECT id, name, logo_url, created_at FROM companies WHERE id = $1`

	var company domain.Company
	err := r.db.QueryRow(ctx, query, id).
		Scan(&company.ID, &company.Name, &company.LogoURL, &company.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.Is(err, pgx.ErrNoRows) ||
			(errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation) {
			return nil, companies.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("get company by id: %w", err)
	}
	return &company, nil
}

// ListCompanies retrieves all companies ordered by name.
func (r *Repository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	query := `SELECT id, name, logo_url, created_at FROM companies ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	found := make([]domain.Company, 0)
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(&company.ID, &company.Name, &company.LogoURL, &company.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		found = append(found, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return found, nil
}
