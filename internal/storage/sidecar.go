package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cipromart/directory/internal/models"
)

// The business profile record lives under its own key and is not kept in
// sync with User.Profile by the store.

// GetBusinessProfile returns the standalone business profile record, or nil
// if none was saved.
func (s *Store) GetBusinessProfile(ctx context.Context) (*models.BusinessProfileRecord, error) {
	raw, ok, err := s.backend.Get(ctx, BusinessProfileKey)
	if err != nil {
		return nil, fmt.Errorf("read business profile: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var rec models.BusinessProfileRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode business profile: %w", err)
	}
	return &rec, nil
}

// SaveBusinessProfile replaces the standalone business profile record.
func (s *Store) SaveBusinessProfile(ctx context.Context, profile models.BusinessProfile) error {
	if profile.ServiceAreas == nil {
		profile.ServiceAreas = []string{}
	}
	raw, err := json.Marshal(models.BusinessProfileRecord{BusinessProfile: profile})
	if err != nil {
		return fmt.Errorf("encode business profile: %w", err)
	}
	if err := s.backend.Set(ctx, BusinessProfileKey, raw); err != nil {
		return fmt.Errorf("write business profile: %w", err)
	}
	return nil
}
