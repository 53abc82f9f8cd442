// internal/app/features/feedback/handler.go
//
// Feedback summarization. Any signed-in caller (guests included) can
// submit feedback; the summarizer condenses it and the pair is logged.
// A summarizer outage fails the request; nothing is logged without a
// summary.
package feedback

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/feedbacksapp/feedbacks/internal/ai"
	apierr "github.com/feedbacksapp/feedbacks/internal/app/features/errors"
	feedbacklogstore "github.com/feedbacksapp/feedbacks/internal/app/store/feedbacklogs"
	sysauth "github.com/feedbacksapp/feedbacks/internal/app/system/auth"
	"github.com/feedbacksapp/feedbacks/internal/app/system/authz"
	"github.com/feedbacksapp/feedbacks/internal/app/system/htmlsanitize"
	"github.com/feedbacksapp/feedbacks/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Logs       *feedbacklogstore.Store
	Summarizer ai.Summarizer
	Log        *zap.Logger
}

func NewHandler(logs *feedbacklogstore.Store, summarizer ai.Summarizer, logger *zap.Logger) *Handler {
	return &Handler{Logs: logs, Summarizer: summarizer, Log: logger}
}

type summarizeRequest struct {
	Text string `json:"text"`
}

// Summarize handles POST /feedback/summarize.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	su, ok := sysauth.CurrentUser(r)
	if !ok {
		apierr.Unauthorized(w)
		return
	}

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.BadRequest(w, "Invalid JSON body.")
		return
	}
	text := htmlsanitize.Text(req.Text)
	if text == "" {
		apierr.BadRequest(w, "Feedback text is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.AI())
	defer cancel()

	summary, err := h.Summarizer.Summarize(ctx, text)
	if err != nil {
		apierr.FromError(w, h.Log, err)
		return
	}

	// Guests log without a profile reference.
	var userID *string
	if authz.IsRegistered(r) {
		id := su.ID
		userID = &id
	}

	entry, err := h.Logs.Create(r.Context(), authz.Principal(r), text, summary, userID)
	if err != nil {
		apierr.FromError(w, h.Log, err)
		return
	}

	h.Log.Info("feedback summarized", zap.String("log_id", entry.ID.Hex()))
	apierr.OK(w, http.StatusCreated, entry)
}

// Logs handles GET /feedback/logs, newest-first.
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Logs.List(r.Context(), authz.Principal(r), 0)
	if err != nil {
		apierr.FromError(w, h.Log, err)
		return
	}
	apierr.OK(w, http.StatusOK, logs)
}
