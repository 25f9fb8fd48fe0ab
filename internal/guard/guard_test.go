package guard

import (
	"testing"

	"github.com/hirewire/jobboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func signedIn(role domain.Role) Session {
	return Session{Ready: true, SignedIn: true, Role: role}
}

func TestEvaluate_SessionNotReady(t *testing.T) {
	g := New()

	for _, path := range []string{EntryPath, JobsPath, AdminPath} {
		d := g.Evaluate(Session{}, path)
		assert.Equal(t, ActionSuspend, d.Action, "path %s", path)
	}
}

func TestEvaluate_SignedOut_RedirectsToEntryWithIntent(t *testing.T) {
	g := New()

	d := g.Evaluate(Session{Ready: true}, JobsPath)
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, "/?redirect_url=%2Fjobs&sign-in=true", d.Target)

	// Entry itself still gets the sign-in flag but no redirect_url.
	d = g.Evaluate(Session{Ready: true}, EntryPath)
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, "/?sign-in=true", d.Target)
}

func TestEvaluate_RequiredRoleMismatch_RedirectsToDefault(t *testing.T) {
	g := New()

	d := g.Evaluate(signedIn(domain.RoleCandidate), PostJobPath)
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, JobsPath, d.Target)

	// Admin at the recruiter-only destination matches rule 3 before the
	// admin capture rule: it goes to the default destination, not /admin.
	d = g.Evaluate(signedIn(domain.RoleAdmin), PostJobPath)
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, JobsPath, d.Target)
}

// Admins may only view the admin destination: every other path redirects
// there, never renders.
func TestEvaluate_AdminCapturedAtAdminDestination(t *testing.T) {
	g := New()

	for _, path := range []string{EntryPath, JobsPath, SavedJobsPath, MyJobsPath, OnboardingPath, "/jobs/42"} {
		d := g.Evaluate(signedIn(domain.RoleAdmin), path)
		assert.Equal(t, ActionRedirect, d.Action, "path %s", path)
		assert.Equal(t, AdminPath, d.Target, "path %s", path)
	}

	d := g.Evaluate(signedIn(domain.RoleAdmin), AdminPath)
	assert.Equal(t, ActionAllow, d.Action)
}

func TestEvaluate_NonAdminAtAdmin_RedirectsToDefault(t *testing.T) {
	g := New()

	for _, role := range []domain.Role{domain.RoleCandidate, domain.RoleRecruiter} {
		d := g.Evaluate(signedIn(role), AdminPath)
		assert.Equal(t, ActionRedirect, d.Action, "role %s", role)
		assert.Equal(t, JobsPath, d.Target, "role %s", role)
	}
}

func TestEvaluate_UnsetRole_ForcedToOnboarding(t *testing.T) {
	g := New()

	for _, path := range []string{EntryPath, JobsPath, SavedJobsPath, "/jobs/42"} {
		d := g.Evaluate(signedIn(domain.RoleUnset), path)
		assert.Equal(t, ActionRedirect, d.Action, "path %s", path)
		assert.Equal(t, OnboardingPath, d.Target, "path %s", path)
	}

	d := g.Evaluate(signedIn(domain.RoleUnset), OnboardingPath)
	assert.Equal(t, ActionAllow, d.Action)
}

// Once a role is set, repeating the navigation that previously redirected
// renders the destination: the guard converges.
func TestEvaluate_ConvergenceAfterRoleAssignment(t *testing.T) {
	g := New()

	d := g.Evaluate(signedIn(domain.RoleUnset), JobsPath)
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, OnboardingPath, d.Target)

	d = g.Evaluate(signedIn(domain.RoleCandidate), JobsPath)
	assert.Equal(t, ActionAllow, d.Action)

	// And stays allowed on repetition.
	d = g.Evaluate(signedIn(domain.RoleCandidate), JobsPath)
	assert.Equal(t, ActionAllow, d.Action)
}

func TestEvaluate_DecisionTable(t *testing.T) {
	g := New()

	tests := []struct {
		name       string
		session    Session
		path       string
		wantAction Action
		wantTarget string
	}{
		{"candidate browses jobs", signedIn(domain.RoleCandidate), JobsPath, ActionAllow, ""},
		{"candidate opens a job", signedIn(domain.RoleCandidate), "/jobs/7", ActionAllow, ""},
		{"candidate saved jobs", signedIn(domain.RoleCandidate), SavedJobsPath, ActionAllow, ""},
		{"recruiter posts a job", signedIn(domain.RoleRecruiter), PostJobPath, ActionAllow, ""},
		{"recruiter my jobs", signedIn(domain.RoleRecruiter), MyJobsPath, ActionAllow, ""},
		{"candidate blocked from posting", signedIn(domain.RoleCandidate), PostJobPath, ActionRedirect, JobsPath},
		{"recruiter blocked from admin", signedIn(domain.RoleRecruiter), AdminPath, ActionRedirect, JobsPath},
		{"admin captured", signedIn(domain.RoleAdmin), JobsPath, ActionRedirect, AdminPath},
		{"unset forced to onboarding", signedIn(domain.RoleUnset), MyJobsPath, ActionRedirect, OnboardingPath},
		{"onboarded candidate leaves onboarding freely", signedIn(domain.RoleCandidate), OnboardingPath, ActionAllow, ""},
		{"trailing slash normalized", signedIn(domain.RoleCandidate), "/jobs/", ActionAllow, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Evaluate(tt.session, tt.path)
			assert.Equal(t, tt.wantAction, d.Action)
			assert.Equal(t, tt.wantTarget, d.Target)
		})
	}
}

func TestLanding(t *testing.T) {
	assert.Equal(t, PostJobPath, Landing(domain.RoleRecruiter))
	assert.Equal(t, JobsPath, Landing(domain.RoleCandidate))
	assert.Equal(t, JobsPath, Landing(domain.RoleAdmin))
	assert.Equal(t, JobsPath, Landing(domain.RoleUnset))
}
