// internal/app/features/chat/routes.go
package chat

import (
	sysauth "github.com/feedbacksapp/feedbacks/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the chat room, mounted under /chat.
// All endpoints need a session; the policy further restricts the room to
// registered members.
func Routes(h *Handler, sessions *sysauth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessions.RequireSignedIn)
	r.Get("/messages", h.List)
	r.Post("/messages", h.Post)
	r.Get("/stream", h.Stream)
	return r
}
