// Package jwt provides a JWT-backed implementation of the identity
// Authenticator.
package jwt

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hirewire/jobboard/internal/domain"
	"github.com/hirewire/jobboard/internal/identity"
)

// Config contains JWT authenticator configuration.
type Config struct {
	SecretKey            string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
}

// Authenticator issues HS256 access tokens and opaque refresh tokens
// persisted through the identity repository.
type Authenticator struct {
	config Config
	repo   identity.Repository
}

// NewAuthenticator creates a new JWT authenticator.
func NewAuthenticator(config Config, repo identity.Repository) *Authenticator {
	return &Authenticator{config: config, repo: repo}
}

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateTokens issues a new access/refresh token pair for a user.
func (a *Authenticator) GenerateTokens(ctx context.Context, user *domain.User) (*identity.TokenPair, error) {
	now := time.Now()

	claims := accessClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.config.AccessTokenDuration)),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.config.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	err = a.repo.SaveRefreshToken(ctx, &domain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: now.Add(a.config.RefreshTokenDuration),
	})
	if err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &identity.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateAccessToken verifies an access token and resolves the principal's
// CURRENT role from storage. Reading the profile on every validation keeps
// role assignment and bans effective without waiting for token expiry.
func (a *Authenticator) ValidateAccessToken(ctx context.Context, token string) (string, domain.Role, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.config.SecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.RoleUnset, identity.ErrInvalidToken
	}

	user, err := a.repo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return "", domain.RoleUnset, identity.ErrInvalidToken
		}
		return "", domain.RoleUnset, fmt.Errorf("load user: %w", err)
	}

	if user.Banned {
		return "", domain.RoleUnset, identity.ErrAccountDisabled
	}

	return user.ID, user.Role, nil
}

// RefreshTokens rotates a refresh token, issuing a fresh pair.
func (a *Authenticator) RefreshTokens(ctx context.Context, refreshToken string) (*identity.TokenPair, error) {
	stored, err := a.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, identity.ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = a.repo.DeleteRefreshToken(ctx, refreshToken)
		return nil, identity.ErrInvalidToken
	}

	user, err := a.repo.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, identity.ErrInvalidToken
	}

	if user.Banned {
		return nil, identity.ErrAccountDisabled
	}

	if err := a.repo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	return a.GenerateTokens(ctx, user)
}

// RevokeRefreshToken invalidates a single refresh token.
func (a *Authenticator) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	return a.repo.DeleteRefreshToken(ctx, refreshToken)
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
