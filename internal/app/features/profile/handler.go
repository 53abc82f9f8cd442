// internal/app/features/profile/handler.go
package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	apierr "github.com/feedbacksapp/feedbacks/internal/app/features/errors"
	userstore "github.com/feedbacksapp/feedbacks/internal/app/store/users"
	sysauth "github.com/feedbacksapp/feedbacks/internal/app/system/auth"
	"github.com/feedbacksapp/feedbacks/internal/app/system/authz"
	"github.com/feedbacksapp/feedbacks/internal/app/system/htmlsanitize"
	"github.com/feedbacksapp/feedbacks/internal/app/system/normalize"
	"github.com/feedbacksapp/feedbacks/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

type saveRequest struct {
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	ProfessionalSector *string `json:"professionalSector"`
}

// Get handles GET /profile. Each caller can only ever see their own
// document; the ID comes from the session, never from the request.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	su, ok := sysauth.CurrentUser(r)
	if !ok {
		apierr.Unauthorized(w)
		return
	}

	user, err := h.Users.Get(r.Context(), authz.Principal(r), su.ID)
	if err != nil {
		apierr.FromError(w, h.Log, err, userstore.ErrNotFound)
		return
	}
	apierr.OK(w, http.StatusOK, user)
}

// Save handles PUT /profile. It creates the profile on first save and
// merges subsequent saves, mirroring the save-with-merge behavior of the
// profile screen. Guests are rejected by the policy.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	su, ok := sysauth.CurrentUser(r)
	if !ok {
		apierr.Unauthorized(w)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.BadRequest(w, "Invalid JSON body.")
		return
	}

	user := models.User{
		ID:                 su.ID,
		Name:               normalize.Name(htmlsanitize.Text(req.Name)),
		Email:              normalize.Email(req.Email),
		ProfessionalSector: req.ProfessionalSector,
	}

	saved, err := h.Users.Upsert(r.Context(), authz.Principal(r), user)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			apierr.NotFound(w)
			return
		}
		apierr.FromError(w, h.Log, err)
		return
	}

	h.Log.Info("profile saved", zap.String("user_id", su.ID))
	apierr.OK(w, http.StatusOK, saved)
}
