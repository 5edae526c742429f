package storage

import (
	"context"

	"github.com/cipromart/directory/internal/models"
	"go.uber.org/zap"
)

// GetCurrentUser resolves the session pointer. It returns nil when nobody
// is signed in or when the referenced user no longer exists.
func (s *Store) GetCurrentUser(ctx context.Context) (*models.User, error) {
	data, err := s.GetStorageData(ctx)
	if err != nil {
		return nil, err
	}
	if data.Session.CurrentUserID == nil || *data.Session.CurrentUserID == "" {
		return nil, nil
	}
	user, err := s.GetUserByID(ctx, *data.Session.CurrentUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Debug("session points at unknown user", zap.String("user_id", *data.Session.CurrentUserID))
	}
	return user, nil
}

// SetCurrentUser points the session at userID. The ID is not checked;
// GetCurrentUser returns nil for an ID that matches nobody.
func (s *Store) SetCurrentUser(ctx context.Context, userID string) error {
	data, err := s.GetStorageData(ctx)
	if err != nil {
		return err
	}
	data.Session.CurrentUserID = &userID
	return s.SaveStorageData(ctx, data)
}

// Logout clears the session pointer.
func (s *Store) Logout(ctx context.Context) error {
	data, err := s.GetStorageData(ctx)
	if err != nil {
		return err
	}
	data.Session.CurrentUserID = nil
	return s.SaveStorageData(ctx, data)
}
