package http

import (
	"context"
	"net/http"

	"github.com/cipromart/directory/internal/middleware"
	"github.com/cipromart/directory/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogService defines the service listing operations required by
// ServicesHandler.
type CatalogService interface {
	List(ctx context.Context, userID string) ([]models.Service, error)
	Add(ctx context.Context, userID string, in models.ServiceData) (*models.Service, error)
	Update(ctx context.Context, userID, serviceID string, patch models.ServicePatch) (*models.Service, error)
	Delete(ctx context.Context, userID, serviceID string) error
}

// ServicesHandler handles the signed-in user's service listings.
type ServicesHandler struct {
	CatalogService CatalogService
	Logger         *zap.Logger
}

// List handles GET /api/me/services.
func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.CatalogService.List(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

// Add handles POST /api/me/services.
func (h *ServicesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceData
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	svc, err := h.CatalogService.Add(r.Context(), middleware.GetUserIDFromContext(r.Context()), req)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

// Update handles PATCH /api/me/services/{serviceID}. Fields absent from
// the body are left unchanged.
func (h *ServicesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.ServicePatch
	if err := decodeJSON(r, &patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	svc, err := h.CatalogService.Update(r.Context(), middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "serviceID"), patch)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

// Delete handles DELETE /api/me/services/{serviceID}.
func (h *ServicesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.CatalogService.Delete(r.Context(), middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "serviceID")); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
