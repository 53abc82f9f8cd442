package recommendationstore_test

import (
	"errors"
	"testing"

	"github.com/feedbacksapp/feedbacks/internal/app/policy/accesspolicy"
	recommendationstore "github.com/feedbacksapp/feedbacks/internal/app/store/recommendations"
	"github.com/feedbacksapp/feedbacks/internal/domain/models"
	"github.com/feedbacksapp/feedbacks/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newStore(t *testing.T) *recommendationstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return recommendationstore.New(db, accesspolicy.New(accesspolicy.DefaultConfig()))
}

func TestStore_Create(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := accesspolicy.Registered("user-1")
	sector := "Tecnología"

	created, err := store.Create(ctx, author, models.Recommendation{
		UserID:     "user-1",
		UserName:   "Ana",
		UserSector: &sector,
		Text:       "Try the new co-working space downtown.",
		Sector:     "Tecnología",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_CreateDenied(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := models.Recommendation{
		UserID:   "user-1",
		UserName: "Ana",
		Text:     "Something",
		Sector:   "Salud",
	}

	// Guest authors are rejected.
	if _, err := store.Create(ctx, accesspolicy.Guest("user-1"), rec); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for guest, got %v", err)
	}
	// Authorship must match the caller.
	if _, err := store.Create(ctx, accesspolicy.Registered("user-2"), rec); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for mismatched author, got %v", err)
	}
	// Sector must be in the fixed set.
	bad := rec
	bad.Sector = "Alquimia"
	if _, err := store.Create(ctx, accesspolicy.Registered("user-1"), bad); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for invalid sector, got %v", err)
	}
}

func TestStore_ListPublicNewestFirst(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := accesspolicy.Registered("user-1")
	for _, text := range []string{"first", "second", "third"} {
		if _, err := store.Create(ctx, author, models.Recommendation{
			UserID:   "user-1",
			UserName: "Ana",
			Text:     text,
			Sector:   "Educación",
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	// Anonymous readers see the full feed.
	recs, err := store.List(ctx, accesspolicy.Unauthenticated(), 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].CreatedAt.After(recs[i-1].CreatedAt) {
			t.Errorf("expected newest-first ordering at index %d", i)
		}
	}
}

func TestStore_UpdateByOwner(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := accesspolicy.Registered("user-1")
	created, err := store.Create(ctx, author, models.Recommendation{
		UserID:   "user-1",
		UserName: "Ana",
		Text:     "original text",
		Sector:   "Marketing",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(ctx, author, created.ID, map[string]any{
		"text": "revised text",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Text != "revised text" {
		t.Errorf("expected updated text, got %q", updated.Text)
	}
	if updated.Sector != created.Sector {
		t.Errorf("untouched sector changed: %q", updated.Sector)
	}
}

func TestStore_UpdateDenied(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := accesspolicy.Registered("user-1")
	created, err := store.Create(ctx, author, models.Recommendation{
		UserID:   "user-1",
		UserName: "Ana",
		Text:     "original text",
		Sector:   "Salud",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Non-owners cannot edit.
	if _, err := store.Update(ctx, accesspolicy.Registered("user-2"), created.ID, map[string]any{
		"text": "hijacked",
	}); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for non-owner, got %v", err)
	}

	// The author reference is immutable.
	if _, err := store.Update(ctx, author, created.ID, map[string]any{
		"userId": "user-2",
	}); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for author change, got %v", err)
	}
}

func TestStore_UpdateMissing(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Update(ctx, accesspolicy.Registered("user-1"), primitive.NewObjectID(), map[string]any{
		"text": "anything",
	})
	if !errors.Is(err, recommendationstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
