// Package http provides the HTTP handlers of the business directory API.
package http

import (
	"context"
	"net/http"

	"github.com/cipromart/directory/internal/middleware"
	"github.com/cipromart/directory/internal/models"
	"go.uber.org/zap"
)

// AccountService defines the account operations required by AuthHandler.
type AccountService interface {
	// Register validates the form, creates a pending user and signs them in.
	Register(ctx context.Context, reg models.RegistrationData) (*models.User, error)
	// Login signs in the first user whose email and password match.
	Login(ctx context.Context, email, password string) (*models.User, error)
	// Logout clears the session.
	Logout(ctx context.Context) error
}

// AuthHandler handles registration, login, logout and the current user.
type AuthHandler struct {
	AccountService AccountService
	Logger         *zap.Logger
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/register. It expects a RegistrationData body
// and answers 201 with the new user.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationData
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.AccountService.Register(r.Context(), req)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, newUserResponse(user))
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.AccountService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.AccountService.Logout(r.Context()); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/me and returns the signed-in user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "please log in", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}
