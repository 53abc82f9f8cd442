package chat_test

import (
	"net/http"
	"testing"

	"github.com/feedbacksapp/feedbacks/internal/ai"
	"github.com/feedbacksapp/feedbacks/internal/app/features/chat"
	"github.com/feedbacksapp/feedbacks/internal/app/policy/accesspolicy"
	chatstore "github.com/feedbacksapp/feedbacks/internal/app/store/chat"
	"github.com/feedbacksapp/feedbacks/internal/domain/models"
	"github.com/feedbacksapp/feedbacks/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, mod ai.Moderator) *chat.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	engine := accesspolicy.New(accesspolicy.DefaultConfig())
	return chat.NewHandler(chatstore.New(db, engine, mod), zap.NewNop())
}

func TestPostCleanMessage(t *testing.T) {
	h := newHandler(t, testutil.EchoModerator())
	user := testutil.RegisteredUser()

	rec := testutil.NewRecorder()
	h.Post(rec, testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/chat/messages", map[string]string{
		"text": "hello room",
	}), user))
	rec.AssertStatus(t, http.StatusCreated)

	var msg models.ChatMessage
	rec.DecodeJSON(t, &msg)
	if msg.Text != "hello room" {
		t.Errorf("expected original text, got %q", msg.Text)
	}
	if msg.IsModerated {
		t.Error("clean message should not be flagged")
	}
}

func TestPostCensoredMessage(t *testing.T) {
	h := newHandler(t, testutil.StaticModerator{
		Result: ai.ModerationResult{IsAppropriate: false, ModeratedText: "**** room"},
	})
	user := testutil.RegisteredUser()

	rec := testutil.NewRecorder()
	h.Post(rec, testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/chat/messages", map[string]string{
		"text": "dang room",
	}), user))
	rec.AssertStatus(t, http.StatusCreated)

	var msg models.ChatMessage
	rec.DecodeJSON(t, &msg)
	if msg.Text != "**** room" {
		t.Errorf("expected censored text, got %q", msg.Text)
	}
	if !msg.IsModerated {
		t.Error("censored message must carry the moderated flag")
	}
}

func TestPostStripsMarkup(t *testing.T) {
	h := newHandler(t, testutil.EchoModerator())
	user := testutil.RegisteredUser()

	rec := testutil.NewRecorder()
	h.Post(rec, testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/chat/messages", map[string]string{
		"text": "hello <script>alert(1)</script>room",
	}), user))
	rec.AssertStatus(t, http.StatusCreated)

	var msg models.ChatMessage
	rec.DecodeJSON(t, &msg)
	if msg.Text != "hello room" {
		t.Errorf("expected tags stripped before moderation, got %q", msg.Text)
	}
}

func TestPostFailsClosedWhenModerationDown(t *testing.T) {
	h := newHandler(t, testutil.StaticModerator{Err: ai.ErrUnavailable})
	user := testutil.RegisteredUser()

	rec := testutil.NewRecorder()
	h.Post(rec, testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/chat/messages", map[string]string{
		"text": "hello",
	}), user))
	rec.AssertStatus(t, http.StatusServiceUnavailable)
	rec.AssertContains(t, "unavailable")
}

func TestPostDeniedForGuest(t *testing.T) {
	h := newHandler(t, testutil.EchoModerator())

	rec := testutil.NewRecorder()
	h.Post(rec, testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/chat/messages", map[string]string{
		"text": "hi",
	}), testutil.GuestUser()))
	rec.AssertStatus(t, http.StatusForbidden)
	rec.AssertContains(t, "permission-denied")
}

func TestStreamDeniedForGuest(t *testing.T) {
	h := newHandler(t, testutil.EchoModerator())

	// A denied subscription must surface as a plain error response, not
	// an opened event stream.
	rec := testutil.NewRecorder()
	h.Stream(rec, testutil.WithUser(testutil.NewRequest("GET", "/chat/stream"), testutil.GuestUser()))
	rec.AssertStatus(t, http.StatusForbidden)
	rec.AssertContains(t, "permission-denied")
	if ct := rec.Header().Get("Content-Type"); ct == "text/event-stream" {
		t.Errorf("stream headers must not be written on denial, got %q", ct)
	}
}

func TestListDeniedForGuest(t *testing.T) {
	h := newHandler(t, testutil.EchoModerator())

	rec := testutil.NewRecorder()
	h.List(rec, testutil.WithUser(testutil.NewRequest("GET", "/chat/messages"), testutil.GuestUser()))
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestListForRegisteredMember(t *testing.T) {
	h := newHandler(t, testutil.EchoModerator())
	user := testutil.RegisteredUser()

	for _, text := range []string{"one", "two"} {
		rec := testutil.NewRecorder()
		h.Post(rec, testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/chat/messages", map[string]string{
			"text": text,
		}), user))
		rec.AssertStatus(t, http.StatusCreated)
	}

	rec := testutil.NewRecorder()
	h.List(rec, testutil.WithUser(testutil.NewRequest("GET", "/chat/messages"), testutil.RegisteredUser()))
	rec.AssertStatus(t, http.StatusOK)

	var msgs []models.ChatMessage
	rec.DecodeJSON(t, &msgs)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Text != "one" {
		t.Errorf("expected oldest first, got %q", msgs[0].Text)
	}
}
