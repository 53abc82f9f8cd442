// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/feedbacksapp/feedbacks/internal/app/policy/accesspolicy"
	"github.com/feedbacksapp/feedbacks/internal/app/system/auth"
)

// Principal translates the request's session state into the explicit
// principal the access policy evaluates. No session means the
// unauthenticated principal; the engine is always consulted with an
// explicit value, never ambient state.
func Principal(r *http.Request) accesspolicy.Principal {
	u, ok := auth.CurrentUser(r)
	if !ok || u.ID == "" {
		return accesspolicy.Unauthenticated()
	}
	if u.Anonymous {
		return accesspolicy.Guest(u.ID)
	}
	return accesspolicy.Registered(u.ID)
}

// DisplayName returns the session user's display name, or "" when there is
// no session. Handlers use it for denormalized snapshots when no profile
// document exists.
func DisplayName(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok {
		return u.Name
	}
	return ""
}

// IsRegistered reports whether the request carries a signed-in,
// non-anonymous user.
func IsRegistered(r *http.Request) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.ID != "" && !u.Anonymous
}
