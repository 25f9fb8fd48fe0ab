// Package identity provides authentication, session management, and the
// one-time role-assignment flow.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hirewire/jobboard/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair is an access/refresh token set issued on login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Authenticator issues and validates session tokens.
type Authenticator interface {
	GenerateTokens(ctx context.Context, user *domain.User) (*TokenPair, error)
	ValidateAccessToken(ctx context.Context, token string) (string, domain.Role, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
	RevokeRefreshToken(ctx context.Context, refreshToken string) error
}

// RoleSyncer propagates a role assignment to the hosted identity directory
// so its copy of the profile stays consistent. May be nil.
type RoleSyncer interface {
	UpdateRole(ctx context.Context, userID string, role domain.Role) error
}

// Service implements identity business logic.
type Service struct {
	repo       Repository
	auth       Authenticator
	roleSyncer RoleSyncer
}

// NewService creates a new identity service.
func NewService(repo Repository, auth Authenticator, roleSyncer RoleSyncer) *Service {
	return &Service{
		repo:       repo,
		auth:       auth,
		roleSyncer: roleSyncer,
	}
}

// RegisterInput holds data for registering a principal.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates a new principal. The role starts unset; the guard keeps
// the principal on the onboarding destination until one is chosen.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	_, err := s.repo.GetUserByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         domain.RoleUnset,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// LoginInput holds credentials for logging in.
type LoginInput struct {
	Email    string
	Password string
}

// Login authenticates a principal and issues a token pair.
func (s *Service) Login(ctx context.Context, input LoginInput) (*domain.User, *TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	if user.Banned {
		return nil, nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.auth.GenerateTokens(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	return user, tokens, nil
}

// ValidateToken resolves an access token to the principal's id and current
// role. Satisfies httputil.TokenValidator.
func (s *Service) ValidateToken(ctx context.Context, token string) (string, domain.Role, error) {
	return s.auth.ValidateAccessToken(ctx, token)
}

// RefreshTokens exchanges a refresh token for a new pair.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	return s.auth.RefreshTokens(ctx, refreshToken)
}

// Logout invalidates a refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.auth.RevokeRefreshToken(ctx, refreshToken)
}

// GetUserByID returns a principal by id.
func (s *Service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// AssignRole writes the chosen role onto the principal's profile. Only
// candidate and recruiter may be chosen; admin is granted out of band.
// Re-invoking with the same role is a safe overwrite. The directory
// write-through is best effort: its failure is logged, never surfaced, and
// does not undo the assignment.
func (s *Service) AssignRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	if !role.IsAssignable() {
		return nil, ErrRoleNotAssignable
	}

	user, err := s.repo.UpdateUserRole(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	if s.roleSyncer != nil {
		if err := s.roleSyncer.UpdateRole(ctx, userID, role); err != nil {
			slog.Warn("role sync to directory failed",
				"user_id", userID,
				"role", role,
				"error", err,
			)
		}
	}

	return user, nil
}
