package feedbacklogstore_test

import (
	"errors"
	"testing"

	"github.com/feedbacksapp/feedbacks/internal/app/policy/accesspolicy"
	feedbacklogstore "github.com/feedbacksapp/feedbacks/internal/app/store/feedbacklogs"
	"github.com/feedbacksapp/feedbacks/internal/testutil"
)

func newStore(t *testing.T) *feedbacklogstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return feedbacklogstore.New(db, accesspolicy.New(accesspolicy.DefaultConfig()))
}

func TestStore_CreateByRegisteredAndGuest(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := "user-1"
	entry, err := store.Create(ctx, accesspolicy.Registered(userID), "the app is great", "positive feedback", &userID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if entry.UserID == nil || *entry.UserID != userID {
		t.Errorf("expected userId reference, got %v", entry.UserID)
	}

	// Guests may log feedback too, with or without a reference.
	if _, err := store.Create(ctx, accesspolicy.Guest("guest-1"), "needs dark mode", "feature request", nil); err != nil {
		t.Fatalf("guest Create failed: %v", err)
	}
}

func TestStore_CreateDeniedForAnon(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, accesspolicy.Unauthenticated(), "text", "summary", nil)
	if !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestStore_CreateRejectsBlankOriginal(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, accesspolicy.Registered("user-1"), "   ", "summary", nil)
	if !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for blank feedback, got %v", err)
	}
}

func TestStore_ListGatingAndOrder(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := accesspolicy.Registered("user-1")
	for _, text := range []string{"first", "second"} {
		if _, err := store.Create(ctx, author, text, "summary of "+text, nil); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	logs, err := store.List(ctx, accesspolicy.Guest("guest-1"), 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(logs))
	}
	// Newest first.
	if logs[0].OriginalFeedbackText != "second" {
		t.Errorf("expected newest entry first, got %q", logs[0].OriginalFeedbackText)
	}

	if _, err := store.List(ctx, accesspolicy.Unauthenticated(), 0); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for anon, got %v", err)
	}
}
