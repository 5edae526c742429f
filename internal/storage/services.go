package storage

import (
	"context"

	"github.com/cipromart/directory/internal/models"
	"go.uber.org/zap"
)

// A service mutation is a read-modify-write of its owning user record.

// AddService appends a service with a fresh ID to the user's list and
// returns it. It returns nil when the user does not exist.
func (s *Store) AddService(ctx context.Context, userID string, in models.ServiceData) (*models.Service, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Debug("add service skipped, user not found", zap.String("user_id", userID))
		return nil, nil
	}

	svc := models.Service{
		ID:          s.newID(),
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		PhotoURL:    in.PhotoURL,
		Price:       in.Price,
	}
	user.Services = append(user.Services, svc)
	if err := s.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return &svc, nil
}

// UpdateService merges the non-nil fields of patch onto the matching
// service. Unknown users or services are ignored.
func (s *Store) UpdateService(ctx context.Context, userID, serviceID string, patch models.ServicePatch) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		s.log.Debug("update service skipped, user not found", zap.String("user_id", userID))
		return nil
	}
	for i := range user.Services {
		if user.Services[i].ID == serviceID {
			patch.Apply(&user.Services[i])
			return s.UpdateUser(ctx, user)
		}
	}
	s.log.Debug("update service skipped, service not found",
		zap.String("user_id", userID), zap.String("service_id", serviceID))
	return nil
}

// DeleteService filters the matching service out of the user's list and
// saves the user even if nothing matched.
func (s *Store) DeleteService(ctx context.Context, userID, serviceID string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		s.log.Debug("delete service skipped, user not found", zap.String("user_id", userID))
		return nil
	}
	kept := make([]models.Service, 0, len(user.Services))
	for _, svc := range user.Services {
		if svc.ID != serviceID {
			kept = append(kept, svc)
		}
	}
	user.Services = kept
	return s.UpdateUser(ctx, user)
}
