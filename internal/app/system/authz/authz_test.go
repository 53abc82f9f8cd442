package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/feedbacksapp/feedbacks/internal/app/system/auth"
	"github.com/feedbacksapp/feedbacks/internal/app/system/authz"
)

func TestPrincipal(t *testing.T) {
	bare := httptest.NewRequest("GET", "/", nil)
	if p := authz.Principal(bare); p.SignedIn || p.ID != "" {
		t.Errorf("bare request: got %+v, want unauthenticated", p)
	}

	reg := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: "u1", Name: "Test"})
	if p := authz.Principal(reg); !p.SignedIn || p.Anonymous || p.ID != "u1" {
		t.Errorf("registered: got %+v", p)
	}

	guest := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: "g1", Name: "Invitado", Anonymous: true})
	if p := authz.Principal(guest); !p.SignedIn || !p.Anonymous || p.ID != "g1" {
		t.Errorf("guest: got %+v", p)
	}

	// A session user with an empty ID fails closed.
	broken := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{})
	if p := authz.Principal(broken); p.SignedIn {
		t.Errorf("empty-id session: got %+v, want unauthenticated", p)
	}
}

func TestIsRegistered(t *testing.T) {
	reg := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: "u1"})
	if !authz.IsRegistered(reg) {
		t.Error("registered user should be registered")
	}
	guest := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: "g1", Anonymous: true})
	if authz.IsRegistered(guest) {
		t.Error("guest should not be registered")
	}
	if authz.IsRegistered(httptest.NewRequest("GET", "/", nil)) {
		t.Error("bare request should not be registered")
	}
}
