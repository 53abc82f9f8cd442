// internal/app/features/chat/handler.go
//
// The community chat room. Only registered members may read or write;
// every posted message passes through AI moderation before it is stored,
// and a moderation outage blocks posting entirely.
package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	apierr "github.com/feedbacksapp/feedbacks/internal/app/features/errors"
	chatstore "github.com/feedbacksapp/feedbacks/internal/app/store/chat"
	sysauth "github.com/feedbacksapp/feedbacks/internal/app/system/auth"
	"github.com/feedbacksapp/feedbacks/internal/app/system/authz"
	"github.com/feedbacksapp/feedbacks/internal/app/system/htmlsanitize"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 200

type Handler struct {
	Chat *chatstore.Store
	Log  *zap.Logger
}

func NewHandler(chat *chatstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Chat: chat, Log: logger}
}

type postRequest struct {
	Text string `json:"text"`
}

// List handles GET /chat/messages, oldest-first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Chat.List(r.Context(), authz.Principal(r), defaultHistoryLimit)
	if err != nil {
		apierr.FromError(w, h.Log, err)
		return
	}
	apierr.OK(w, http.StatusOK, msgs)
}

// Post handles POST /chat/messages.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	su, ok := sysauth.CurrentUser(r)
	if !ok {
		apierr.Unauthorized(w)
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.BadRequest(w, "Invalid JSON body.")
		return
	}

	msg, err := h.Chat.Post(r.Context(), authz.Principal(r), authz.DisplayName(r), htmlsanitize.Text(req.Text))
	if err != nil {
		if errors.Is(err, chatstore.ErrEmptyMessage) {
			apierr.BadRequest(w, "Message is empty.")
			return
		}
		apierr.FromError(w, h.Log, err)
		return
	}

	h.Log.Info("chat message posted",
		zap.String("user_id", su.ID),
		zap.Bool("moderated", msg.IsModerated))
	apierr.OK(w, http.StatusCreated, msg)
}

// Stream handles GET /chat/stream. It pushes new messages over
// server-sent events until the client disconnects. Requires a
// change-stream capable deployment.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		apierr.Internal(w, h.Log, errors.New("response writer does not support streaming"))
		return
	}

	// Subscribe fails synchronously on a denied principal or a broken
	// stream, before any headers are written.
	msgs, err := h.Chat.Subscribe(r.Context(), authz.Principal(r))
	if err != nil {
		apierr.FromError(w, h.Log, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	keepalive := time.NewTicker(25 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			buf, err := json.Marshal(msg)
			if err != nil {
				h.Log.Warn("failed to encode chat event", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", buf)
			flusher.Flush()
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
