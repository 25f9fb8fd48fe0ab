package guard

import (
	"net/http"

	"github.com/hirewire/jobboard/internal/pkg/httputil"
)

// ResolverFunc builds the session value for a request.
type ResolverFunc func(r *http.Request) Session

// ResolveFromContext builds a session from the values the session
// middleware annotated on the request context. A request that carried no
// valid credentials resolves to a signed-out session.
func ResolveFromContext(r *http.Request) Session {
	userID := httputil.GetUserID(r.Context())
	return Session{
		Ready:    true,
		SignedIn: userID != "",
		Role:     httputil.GetRole(r.Context()),
	}
}

// Middleware gates a destination's route group behind the guard. Allowed
// requests pass through; everything else is answered with the guard's
// verdict instead of the destination's payload.
func (g *Guard) Middleware(destination string, resolve ResolverFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := g.Evaluate(resolve(r), destination)

			switch decision.Action {
			case ActionAllow:
				next.ServeHTTP(w, r)
			case ActionRedirect:
				w.Header().Set("Location", decision.Target)
				httputil.JSON(w, http.StatusTemporaryRedirect, decision)
			case ActionSuspend:
				w.WriteHeader(http.StatusNoContent)
			}
		})
	}
}
