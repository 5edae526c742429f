package http

import (
	"context"
	"net/http"

	"github.com/cipromart/directory/internal/middleware"
	"github.com/cipromart/directory/internal/models"
	"go.uber.org/zap"
)

// BillingService defines the package and payment operations required by
// BillingHandler.
type BillingService interface {
	SelectPackage(ctx context.Context, userID string, pkg models.PackageID) (*models.User, error)
	Pay(ctx context.Context, userID, optionID string) (*models.User, error)
}

// BillingHandler serves the package catalog and the payment flow.
type BillingHandler struct {
	BillingService BillingService
	Logger         *zap.Logger
}

// SelectPackageRequest represents the JSON payload for PUT /api/me/package.
type SelectPackageRequest struct {
	Package models.PackageID `json:"package"`
}

// PaymentRequest represents the JSON payload for POST /api/me/payment.
type PaymentRequest struct {
	// Method is a payment option id such as "mtn-momo".
	Method string `json:"method"`
}

// Packages handles GET /api/packages.
func (h *BillingHandler) Packages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Packages)
}

// PaymentMethods handles GET /api/payment-methods, listing the options
// offered in the signed-in user's country.
func (h *BillingHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "please log in", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, models.AvailablePaymentOptions(user.Country))
}

// SelectPackage handles PUT /api/me/package.
func (h *BillingHandler) SelectPackage(w http.ResponseWriter, r *http.Request) {
	var req SelectPackageRequest
	if err := decodeJSON(r, &req); err != nil || req.Package == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.BillingService.SelectPackage(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.Package)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// Pay handles POST /api/me/payment. It blocks while the gateway processes
// the charge.
func (h *BillingHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := decodeJSON(r, &req); err != nil || req.Method == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.BillingService.Pay(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.Method)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// Catalog handles GET /api/catalog with the static form choices.
func Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": models.ServiceCategories,
		"countries":  models.Countries,
	})
}
