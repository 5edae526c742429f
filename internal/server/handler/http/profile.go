package http

import (
	"context"
	"net/http"

	"github.com/cipromart/directory/internal/middleware"
	"github.com/cipromart/directory/internal/models"
	"github.com/cipromart/directory/internal/service"
	"go.uber.org/zap"
)

// ProfileService defines the profile operations required by ProfileHandler.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Save(ctx context.Context, userID string, in service.ProfileInput) (*models.User, error)
}

// BusinessProfileReader reads the standalone business profile record.
type BusinessProfileReader interface {
	GetBusinessProfile(ctx context.Context) (*models.BusinessProfileRecord, error)
}

// ProfileHandler serves the business profile.
type ProfileHandler struct {
	ProfileService  ProfileService
	BusinessProfile BusinessProfileReader
	Logger          *zap.Logger
}

// Get handles GET /api/me/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ProfileService.Get(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	if profile.ServiceAreas == nil {
		profile.ServiceAreas = []string{}
	}
	writeJSON(w, http.StatusOK, profile)
}

// Save handles PUT /api/me/profile and returns the updated user.
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req service.ProfileInput
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.ProfileService.Save(r.Context(), middleware.GetUserIDFromContext(r.Context()), req)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// Business handles GET /api/business-profile.
func (h *ProfileHandler) Business(w http.ResponseWriter, r *http.Request) {
	rec, err := h.BusinessProfile.GetBusinessProfile(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	if rec == nil {
		http.Error(w, "business profile not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
