package service

import (
	"context"
	"strings"

	"github.com/cipromart/directory/internal/models"
	"github.com/cipromart/directory/internal/validate"
)

// AccountStore defines the persistence operations needed by AccountService.
type AccountStore interface {
	// CreateUser appends a new pending user and returns it.
	CreateUser(ctx context.Context, reg models.RegistrationData) (*models.User, error)
	// FindUsersByEmail returns every user registered with email.
	FindUsersByEmail(ctx context.Context, email string) ([]models.User, error)
	// GetCurrentUser resolves the session pointer, nil when nobody is signed in.
	GetCurrentUser(ctx context.Context) (*models.User, error)
	// SetCurrentUser points the session at userID.
	SetCurrentUser(ctx context.Context, userID string) error
	// Logout clears the session pointer.
	Logout(ctx context.Context) error
}

// AccountService handles registration and the session.
type AccountService struct {
	store AccountStore
}

// NewAccountService constructs an AccountService over store.
func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

// Register validates the form, creates the user and signs them in.
// Validation failures are returned as validate.Errors.
func (s *AccountService) Register(ctx context.Context, reg models.RegistrationData) (*models.User, error) {
	reg.BusinessName = strings.TrimSpace(reg.BusinessName)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Phone = strings.TrimSpace(reg.Phone)
	if err := validate.Registration(reg); err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, reg)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetCurrentUser(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// Login signs in the first user, in registration order, whose email and
// password both match.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	candidates, err := s.store.FindUsersByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].CheckPassword(password) {
			if err := s.store.SetCurrentUser(ctx, candidates[i].ID); err != nil {
				return nil, err
			}
			return &candidates[i], nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Logout ends the session.
func (s *AccountService) Logout(ctx context.Context) error {
	return s.store.Logout(ctx)
}

// Current returns the signed-in user, or nil.
func (s *AccountService) Current(ctx context.Context) (*models.User, error) {
	return s.store.GetCurrentUser(ctx)
}
