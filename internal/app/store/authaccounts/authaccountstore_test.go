package authaccountstore_test

import (
	"errors"
	"testing"

	authaccountstore "github.com/feedbacksapp/feedbacks/internal/app/store/authaccounts"
	"github.com/feedbacksapp/feedbacks/internal/app/system/indexes"
	"github.com/feedbacksapp/feedbacks/internal/testutil"
)

func TestStore_CreateAndLookup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := authaccountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	acct, err := store.Create(ctx, "Ana@Example.com", "hash")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if acct.ID == "" {
		t.Error("expected generated account ID")
	}
	if acct.Email != "ana@example.com" {
		t.Errorf("expected normalized email, got %q", acct.Email)
	}

	byEmail, err := store.GetByEmail(ctx, "  ANA@example.COM ")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail.ID != acct.ID {
		t.Errorf("lookup returned wrong account: %q", byEmail.ID)
	}

	byID, err := store.GetByID(ctx, acct.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID.Email != acct.Email {
		t.Errorf("GetByID returned wrong account: %q", byID.Email)
	}
}

func TestStore_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := authaccountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The unique index enforces one account per email.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := store.Create(ctx, "ana@example.com", "hash"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := store.Create(ctx, "ANA@example.com", "other-hash")
	if !errors.Is(err, authaccountstore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := authaccountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, authaccountstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, authaccountstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
