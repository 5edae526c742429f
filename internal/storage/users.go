package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/cipromart/directory/internal/models"
	"go.uber.org/zap"
)

// CreateUser appends a new pending user on the basic package and returns it.
// Input is stored as given; validation is the caller's job. Registering the
// same email twice yields two users.
func (s *Store) CreateUser(ctx context.Context, reg models.RegistrationData) (*models.User, error) {
	hash, err := models.HashPassword(reg.Password, s.passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           s.newID(),
		BusinessName: reg.BusinessName,
		Email:        reg.Email,
		Phone:        reg.Phone,
		PasswordHash: hash,
		Country:      reg.Country,
		Status:       models.StatusPending,
		Package:      models.PackageBasic,
		Subscription: models.Subscription{},
		Payment: models.Payment{
			Method: models.PaymentPlaceholder,
			Status: models.PaymentInitiated,
		},
		Profile: models.Profile{
			Contact: models.Contact{
				Phone: reg.Phone,
				Email: reg.Email,
			},
			ServiceAreas: []string{},
			Completion:   0,
		},
		Services: []models.Service{},
	}

	data, err := s.GetStorageData(ctx)
	if err != nil {
		return nil, err
	}
	data.Users = append(data.Users, user)
	if err := s.SaveStorageData(ctx, data); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID returns the user with id, or nil if there is none.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	data, err := s.GetStorageData(ctx)
	if err != nil {
		return nil, err
	}
	for i := range data.Users {
		if data.Users[i].ID == id {
			u := data.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// UpdateUser overwrites the stored user that has the same ID. Unknown IDs
// are ignored.
func (s *Store) UpdateUser(ctx context.Context, updated *models.User) error {
	if updated == nil {
		return nil
	}
	data, err := s.GetStorageData(ctx)
	if err != nil {
		return err
	}
	for i := range data.Users {
		if data.Users[i].ID == updated.ID {
			data.Users[i] = *updated
			return s.SaveStorageData(ctx, data)
		}
	}
	s.log.Debug("update skipped, user not found", zap.String("user_id", updated.ID))
	return nil
}

// FindUsersByEmail returns every user registered with email, compared
// case-insensitively, in registration order.
func (s *Store) FindUsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	data, err := s.GetStorageData(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.User
	for _, u := range data.Users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			out = append(out, u)
		}
	}
	return out, nil
}
