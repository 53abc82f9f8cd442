// internal/app/features/recommendations/routes.go
package recommendations

import (
	sysauth "github.com/feedbacksapp/feedbacks/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the feed, mounted under
// /recommendations. Listing is public; writes need a session (the policy
// then decides whether that session may write).
func Routes(h *Handler, sessions *sysauth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireSignedIn)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
	})
	return r
}
