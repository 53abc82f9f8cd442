package chatstore_test

import (
	"errors"
	"testing"

	"github.com/feedbacksapp/feedbacks/internal/ai"
	"github.com/feedbacksapp/feedbacks/internal/app/policy/accesspolicy"
	chatstore "github.com/feedbacksapp/feedbacks/internal/app/store/chat"
	"github.com/feedbacksapp/feedbacks/internal/testutil"
)

func newStore(t *testing.T, mod ai.Moderator) *chatstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return chatstore.New(db, accesspolicy.New(accesspolicy.DefaultConfig()), mod)
}

func TestStore_PostCleanMessage(t *testing.T) {
	store := newStore(t, testutil.EchoModerator())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	msg, err := store.Post(ctx, accesspolicy.Registered("user-1"), "Ana", "hello everyone")
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if msg.Text != "hello everyone" {
		t.Errorf("expected original text, got %q", msg.Text)
	}
	if msg.IsModerated {
		t.Error("clean message should not be flagged")
	}
	if msg.UserID != "user-1" {
		t.Errorf("expected author user-1, got %q", msg.UserID)
	}
}

func TestStore_PostStoresCensoredText(t *testing.T) {
	store := newStore(t, testutil.StaticModerator{
		Result: ai.ModerationResult{IsAppropriate: false, ModeratedText: "**** everyone"},
	})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	msg, err := store.Post(ctx, accesspolicy.Registered("user-1"), "Ana", "dang everyone")
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if msg.Text != "**** everyone" {
		t.Errorf("expected censored text, got %q", msg.Text)
	}
	if !msg.IsModerated {
		t.Error("flagged message must carry the moderated marker")
	}
}

func TestStore_PostFailsClosedWhenModeratorDown(t *testing.T) {
	store := newStore(t, testutil.StaticModerator{Err: ai.ErrUnavailable})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Post(ctx, accesspolicy.Registered("user-1"), "Ana", "hello"); !errors.Is(err, ai.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	// Nothing may be stored when moderation fails.
	msgs, err := store.List(ctx, accesspolicy.Registered("user-1"), 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(msgs))
	}
}

func TestStore_PostDeniedForGuestsAndAnon(t *testing.T) {
	store := newStore(t, testutil.EchoModerator())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Post(ctx, accesspolicy.Guest("guest-1"), "Guest", "hi"); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for guest, got %v", err)
	}
	if _, err := store.Post(ctx, accesspolicy.Unauthenticated(), "", "hi"); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for anon, got %v", err)
	}
}

func TestStore_PostRejectsEmptyMessage(t *testing.T) {
	store := newStore(t, testutil.EchoModerator())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Post(ctx, accesspolicy.Registered("user-1"), "Ana", "   "); !errors.Is(err, chatstore.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestStore_ListGatingAndOrder(t *testing.T) {
	store := newStore(t, testutil.EchoModerator())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := accesspolicy.Registered("user-1")
	for _, text := range []string{"one", "two", "three"} {
		if _, err := store.Post(ctx, author, "Ana", text); err != nil {
			t.Fatalf("Post failed: %v", err)
		}
	}

	msgs, err := store.List(ctx, accesspolicy.Registered("user-2"), 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	// Oldest first.
	if msgs[0].Text != "one" || msgs[2].Text != "three" {
		t.Errorf("unexpected ordering: %q ... %q", msgs[0].Text, msgs[2].Text)
	}

	// Guests and anonymous callers cannot read the room.
	if _, err := store.List(ctx, accesspolicy.Guest("guest-1"), 0); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for guest, got %v", err)
	}
	if _, err := store.List(ctx, accesspolicy.Unauthenticated(), 0); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for anon, got %v", err)
	}
}
