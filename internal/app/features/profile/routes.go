// internal/app/features/profile/routes.go
package profile

import (
	sysauth "github.com/feedbacksapp/feedbacks/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the profile endpoints, mounted under
// /profile. Both endpoints require a signed-in session.
func Routes(h *Handler, sessions *sysauth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessions.RequireSignedIn)
	r.Get("/", h.Get)
	r.Put("/", h.Save)
	return r
}
