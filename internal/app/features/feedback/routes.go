// internal/app/features/feedback/routes.go
package feedback

import (
	sysauth "github.com/feedbacksapp/feedbacks/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for feedback, mounted under /feedback.
// Guests may use both endpoints; anonymous visitors may use neither.
func Routes(h *Handler, sessions *sysauth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessions.RequireSignedIn)
	r.Post("/summarize", h.Summarize)
	r.Get("/logs", h.ListLogs)
	return r
}
