// Package guard implements role-gated navigation: every navigation attempt
// is evaluated against the principal's session and either allowed or
// redirected. The engine is a pure function of the session and the
// requested path; it never errors and has no side effects.
package guard

import (
	"net/url"
	"strings"

	"github.com/hirewire/jobboard/internal/domain"
)

// Well-known destinations.
const (
	EntryPath      = "/"
	OnboardingPath = "/onboarding"
	JobsPath       = "/jobs"
	PostJobPath    = "/post-job"
	SavedJobsPath  = "/saved-jobs"
	MyJobsPath     = "/my-jobs"
	AdminPath      = "/admin"
)

// SignInFlag is the query flag carried on entry redirects so the entry
// screen opens its sign-in surface.
const SignInFlag = "sign-in"

// Action is what the guard decided to do with a navigation attempt.
type Action int

const (
	// ActionAllow renders the requested destination.
	ActionAllow Action = iota
	// ActionRedirect navigates to Decision.Target instead.
	ActionRedirect
	// ActionSuspend renders nothing; the session is still being established.
	ActionSuspend
)

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case ActionRedirect:
		return "redirect"
	case ActionSuspend:
		return "suspend"
	default:
		return "allow"
	}
}

// MarshalJSON serializes the action as its wire name.
func (a Action) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	Action Action `json:"action"`
	Target string `json:"target,omitempty"`
}

// Session is the explicit session value the guard evaluates. It is built
// per request and injected; the guard never reads ambient state.
type Session struct {
	// Ready is false while the session is still being established.
	Ready    bool
	SignedIn bool
	Role     domain.Role
}

// Destination annotates a navigable path. RequiredRole of RoleUnset means
// the destination carries no role restriction.
type Destination struct {
	Path         string
	RequiredRole domain.Role
}

// Guard evaluates navigation attempts against the destination catalog.
type Guard struct {
	entry        string
	onboarding   string
	fallback     string
	admin        string
	destinations map[string]Destination
}

// New creates a guard with the standard destination catalog.
func New() *Guard {
	g := &Guard{
		entry:        EntryPath,
		onboarding:   OnboardingPath,
		fallback:     JobsPath,
		admin:        AdminPath,
		destinations: make(map[string]Destination),
	}

	g.Register(Destination{Path: EntryPath})
	g.Register(Destination{Path: OnboardingPath})
	g.Register(Destination{Path: JobsPath})
	g.Register(Destination{Path: SavedJobsPath})
	g.Register(Destination{Path: MyJobsPath})
	g.Register(Destination{Path: PostJobPath, RequiredRole: domain.RoleRecruiter})
	g.Register(Destination{Path: AdminPath, RequiredRole: domain.RoleAdmin})

	return g
}

// Register adds or replaces a destination in the catalog.
func (g *Guard) Register(d Destination) {
	g.destinations[normalize(d.Path)] = d
}

// Evaluate runs the decision table for one navigation attempt. Rules are
// checked in precedence order; the first match wins:
//
//  1. session not ready            -> suspend
//  2. not signed in                -> redirect to entry with sign-in intent
//  3. destination role mismatch    -> redirect to default
//  4. admin anywhere but admin     -> redirect to admin
//  5. non-admin at admin           -> redirect to default
//  6. unset role off onboarding    -> redirect to onboarding
//  7. otherwise                    -> allow
func (g *Guard) Evaluate(s Session, path string) Decision {
	path = normalize(path)

	if !s.Ready {
		return Decision{Action: ActionSuspend}
	}

	if !s.SignedIn {
		return Decision{Action: ActionRedirect, Target: g.signInTarget(path)}
	}

	if d, ok := g.destinations[path]; ok && d.RequiredRole != domain.RoleUnset && s.Role != d.RequiredRole {
		return Decision{Action: ActionRedirect, Target: g.fallback}
	}

	if s.Role == domain.RoleAdmin && path != g.admin {
		return Decision{Action: ActionRedirect, Target: g.admin}
	}

	if s.Role != domain.RoleAdmin && path == g.admin {
		return Decision{Action: ActionRedirect, Target: g.fallback}
	}

	if s.Role == domain.RoleUnset && path != g.onboarding {
		return Decision{Action: ActionRedirect, Target: g.onboarding}
	}

	return Decision{Action: ActionAllow}
}

// Landing returns the destination a principal lands on right after its role
// is assigned: recruiters go to the posting screen, everyone else to the
// job listing.
func Landing(role domain.Role) string {
	if role == domain.RoleRecruiter {
		return PostJobPath
	}
	return JobsPath
}

// signInTarget builds the entry redirect carrying the sign-in intent flag
// and the originally requested path.
func (g *Guard) signInTarget(requested string) string {
	q := url.Values{}
	q.Set(SignInFlag, "true")
	if requested != g.entry {
		q.Set("redirect_url", requested)
	}
	return g.entry + "?" + q.Encode()
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
