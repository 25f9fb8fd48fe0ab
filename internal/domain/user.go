package domain

import (
	"strings"
	"time"
)

// Role is the single attribute gating navigation. It is a closed
// enumeration: values read from external stores are normalized through
// ParseRole instead of being propagated as arbitrary strings.
type Role string

const (
	// RoleUnset is the default for a newly registered principal. A principal
	// keeps this role until the onboarding choice is made.
	RoleUnset     Role = ""
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// ParseRole normalizes a free-form role attribute into the closed set.
// Unrecognized values collapse to RoleUnset.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleCandidate:
		return RoleCandidate
	case RoleRecruiter:
		return RoleRecruiter
	case RoleAdmin:
		return RoleAdmin
	}
	return RoleUnset
}

// IsValid checks if the role is a member of the closed set, including unset.
func (r Role) IsValid() bool {
	switch r {
	case RoleUnset, RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// IsAssignable reports whether the role may be chosen during onboarding.
// Admin is granted out of band, never self-assigned.
func (r Role) IsAssignable() bool {
	return r == RoleCandidate || r == RoleRecruiter
}

// HasPermission checks whether the role satisfies a route requirement.
// Admin satisfies every requirement; other roles only their own.
func (r Role) HasPermission(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}

// User is the principal profile owned by this service.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Banned       bool      `json:"banned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken is a persisted long-lived session credential.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// DirectoryUser is the minimal projection of an identity-directory account.
// The directory's full payload is treated as opaque.
type DirectoryUser struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Banned bool   `json:"banned"`
}
