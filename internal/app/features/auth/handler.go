// internal/app/features/auth/handler.go
//
// Session endpoints. Registered accounts carry credentials in the auth
// subsystem; guests get a throwaway identity that exists only in the
// session cookie.
package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	apierr "github.com/feedbacksapp/feedbacks/internal/app/features/errors"
	"github.com/feedbacksapp/feedbacks/internal/app/policy/accesspolicy"
	authaccountstore "github.com/feedbacksapp/feedbacks/internal/app/store/authaccounts"
	userstore "github.com/feedbacksapp/feedbacks/internal/app/store/users"
	sysauth "github.com/feedbacksapp/feedbacks/internal/app/system/auth"
	"github.com/feedbacksapp/feedbacks/internal/app/system/authutil"
	"github.com/feedbacksapp/feedbacks/internal/app/system/normalize"
	"github.com/feedbacksapp/feedbacks/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Sessions *sysauth.SessionManager
	Accounts *authaccountstore.Store
	Users    *userstore.Store
	Log      *zap.Logger
}

func NewHandler(sessions *sysauth.SessionManager, accounts *authaccountstore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sessions, Accounts: accounts, Users: users, Log: logger}
}

type credentialsRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     string  `json:"name,omitempty"`
	Sector   *string `json:"professionalSector,omitempty"`
}

type sessionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// Signup handles POST /auth/signup. It registers credentials, writes the
// profile document, and opens a session.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.BadRequest(w, "Invalid JSON body.")
		return
	}

	email := normalize.Email(req.Email)
	if email == "" {
		apierr.BadRequest(w, "Email is required.")
		return
	}
	if err := authutil.ValidatePassword(req.Password); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		apierr.Internal(w, h.Log, err)
		return
	}

	acct, err := h.Accounts.Create(r.Context(), email, hash)
	if errors.Is(err, authaccountstore.ErrDuplicateEmail) {
		apierr.JSON(w, http.StatusConflict, "email-in-use", "An account with this email already exists.")
		return
	}
	if err != nil {
		apierr.Internal(w, h.Log, err)
		return
	}

	user := sysauth.SessionUser{
		ID:    acct.ID,
		Name:  normalize.Name(req.Name),
		Email: acct.Email,
	}

	// The account exists even if the profile write is rejected; the
	// client can retry through /profile.
	if _, err := h.Users.Upsert(r.Context(), accesspolicy.Registered(acct.ID), models.User{
		ID:                 acct.ID,
		Name:               user.Name,
		Email:              acct.Email,
		ProfessionalSector: req.Sector,
	}); err != nil {
		apierr.FromError(w, h.Log, err)
		return
	}

	if err := h.Sessions.SignIn(w, r, user); err != nil {
		apierr.Internal(w, h.Log, err)
		return
	}

	h.Log.Info("account created", zap.String("account_id", acct.ID))
	apierr.OK(w, http.StatusCreated, sessionResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.BadRequest(w, "Invalid JSON body.")
		return
	}

	acct, err := h.Accounts.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, authaccountstore.ErrNotFound) {
		apierr.JSON(w, http.StatusUnauthorized, "invalid-credentials", "Email or password is incorrect.")
		return
	}
	if err != nil {
		apierr.Internal(w, h.Log, err)
		return
	}
	if !authutil.CheckPassword(req.Password, acct.PasswordHash) {
		apierr.JSON(w, http.StatusUnauthorized, "invalid-credentials", "Email or password is incorrect.")
		return
	}

	user := sysauth.SessionUser{
		ID:    acct.ID,
		Email: acct.Email,
	}
	// Pull the display name from the profile when one exists.
	if profile, err := h.Users.Get(r.Context(), accesspolicy.Registered(acct.ID), acct.ID); err == nil {
		user.Name = profile.Name
	}

	if err := h.Sessions.SignIn(w, r, user); err != nil {
		apierr.Internal(w, h.Log, err)
		return
	}

	h.Log.Info("login", zap.String("account_id", acct.ID))
	apierr.OK(w, http.StatusOK, sessionResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

// Guest handles POST /auth/guest. Guests hold a session but never a
// profile document; most collections reject them.
func (h *Handler) Guest(w http.ResponseWriter, r *http.Request) {
	user := sysauth.SessionUser{
		ID:        uuid.NewString(),
		Name:      "Invitado",
		Anonymous: true,
	}
	if err := h.Sessions.SignIn(w, r, user); err != nil {
		apierr.Internal(w, h.Log, err)
		return
	}

	h.Log.Info("guest session opened", zap.String("guest_id", user.ID))
	apierr.OK(w, http.StatusCreated, sessionResponse{
		ID:          user.ID,
		Name:        user.Name,
		IsAnonymous: true,
	})
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		apierr.Internal(w, h.Log, err)
		return
	}
	apierr.OK(w, http.StatusOK, map[string]string{"status": "signed-out"})
}
