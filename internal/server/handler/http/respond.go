package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cipromart/directory/internal/models"
	"github.com/cipromart/directory/internal/service"
	"github.com/cipromart/directory/internal/storage"
	"github.com/cipromart/directory/internal/validate"
	"go.uber.org/zap"
)

// UserResponse is the public view of a user. It never carries the
// password hash, and Profile.Completion is computed at read time.
type UserResponse struct {
	ID           string               `json:"id"`
	BusinessName string               `json:"businessName"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	Country      string               `json:"country"`
	Status       models.AccountStatus `json:"status"`
	Package      models.PackageID     `json:"package"`
	Subscription models.Subscription  `json:"subscription"`
	Payment      models.Payment       `json:"payment"`
	Profile      models.Profile       `json:"profile"`
	Services     []models.Service     `json:"services"`
}

func newUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		BusinessName: u.BusinessName,
		Email:        u.Email,
		Phone:        u.Phone,
		Country:      u.Country,
		Status:       u.Status,
		Package:      u.Package,
		Subscription: u.Subscription,
		Payment:      u.Payment,
		Profile:      u.Profile,
		Services:     u.Services,
	}
	resp.Profile.Completion = storage.CalculateProfileCompletion(u)
	if resp.Services == nil {
		resp.Services = []models.Service{}
	}
	if resp.Profile.ServiceAreas == nil {
		resp.Profile.ServiceAreas = []string{}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto HTTP statuses. Anything unrecognised
// is logged and reported as an internal error.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "validation failed",
			"details": verrs,
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrServiceNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrServiceLimitReached),
		errors.Is(err, service.ErrUnknownPackage),
		errors.Is(err, service.ErrUnknownPaymentMethod),
		errors.Is(err, service.ErrPaymentMethodUnavailable):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, service.ErrPaymentFailed):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	default:
		if logger != nil {
			logger.Error("request failed", zap.Error(err))
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
