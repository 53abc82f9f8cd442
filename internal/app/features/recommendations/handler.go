// internal/app/features/recommendations/handler.go
//
// The public recommendation feed. Anyone can read; posting and editing
// require a registered session and go through the access policy.
package recommendations

import (
	"encoding/json"
	"errors"
	"net/http"

	apierr "github.com/feedbacksapp/feedbacks/internal/app/features/errors"
	recommendationstore "github.com/feedbacksapp/feedbacks/internal/app/store/recommendations"
	userstore "github.com/feedbacksapp/feedbacks/internal/app/store/users"
	sysauth "github.com/feedbacksapp/feedbacks/internal/app/system/auth"
	"github.com/feedbacksapp/feedbacks/internal/app/system/authz"
	"github.com/feedbacksapp/feedbacks/internal/app/system/htmlsanitize"
	"github.com/feedbacksapp/feedbacks/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const defaultListLimit = 100

type Handler struct {
	Recommendations *recommendationstore.Store
	Users           *userstore.Store
	Log             *zap.Logger
}

func NewHandler(recs *recommendationstore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Recommendations: recs, Users: users, Log: logger}
}

type createRequest struct {
	Text   string `json:"text"`
	Sector string `json:"sector"`
}

type updateRequest struct {
	Text   *string `json:"text"`
	Sector *string `json:"sector"`
}

// List handles GET /recommendations. The feed is public.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Recommendations.List(r.Context(), authz.Principal(r), defaultListLimit)
	if err != nil {
		apierr.FromError(w, h.Log, err)
		return
	}
	apierr.OK(w, http.StatusOK, recs)
}

// Get handles GET /recommendations/{id}. Single documents are as public
// as the feed.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.BadRequest(w, "Invalid recommendation ID.")
		return
	}

	rec, err := h.Recommendations.Get(r.Context(), authz.Principal(r), id)
	if err != nil {
		apierr.FromError(w, h.Log, err, recommendationstore.ErrNotFound)
		return
	}
	apierr.OK(w, http.StatusOK, rec)
}

// Create handles POST /recommendations. The author snapshot (name and
// sector) is captured from the session and profile at post time, so
// later profile edits do not rewrite history.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	su, ok := sysauth.CurrentUser(r)
	if !ok {
		apierr.Unauthorized(w)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.BadRequest(w, "Invalid JSON body.")
		return
	}

	rec := models.Recommendation{
		UserID:   su.ID,
		UserName: su.Name,
		Text:     htmlsanitize.Text(req.Text),
		Sector:   req.Sector,
	}
	if rec.Text == "" {
		apierr.BadRequest(w, "Text is required.")
		return
	}

	p := authz.Principal(r)
	if profile, err := h.Users.Get(r.Context(), p, su.ID); err == nil {
		if profile.Name != "" {
			rec.UserName = profile.Name
		}
		rec.UserSector = profile.ProfessionalSector
	}

	created, err := h.Recommendations.Create(r.Context(), p, rec)
	if err != nil {
		apierr.FromError(w, h.Log, err)
		return
	}

	h.Log.Info("recommendation posted",
		zap.String("user_id", su.ID),
		zap.String("recommendation_id", created.ID.Hex()))
	apierr.OK(w, http.StatusCreated, created)
}

// Update handles PUT /recommendations/{id}. Only the text and sector may
// change; ownership and authorship immutability are enforced by the
// policy.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.BadRequest(w, "Invalid recommendation ID.")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.BadRequest(w, "Invalid JSON body.")
		return
	}

	patch := map[string]any{}
	if req.Text != nil {
		text := htmlsanitize.Text(*req.Text)
		if text == "" {
			apierr.BadRequest(w, "Text cannot be empty.")
			return
		}
		patch["text"] = text
	}
	if req.Sector != nil {
		patch["sector"] = *req.Sector
	}
	if len(patch) == 0 {
		apierr.BadRequest(w, "Nothing to update.")
		return
	}

	updated, err := h.Recommendations.Update(r.Context(), authz.Principal(r), id, patch)
	if err != nil {
		if errors.Is(err, recommendationstore.ErrNotFound) {
			apierr.NotFound(w)
			return
		}
		apierr.FromError(w, h.Log, err)
		return
	}
	apierr.OK(w, http.StatusOK, updated)
}
