package service

import (
	"context"
	"strings"

	"github.com/cipromart/directory/internal/models"
	"github.com/cipromart/directory/internal/storage"
)

// ProfileStore defines the persistence operations needed by ProfileService.
type ProfileStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	SaveBusinessProfile(ctx context.Context, profile models.BusinessProfile) error
}

// ProfileInput is the editable part of a business profile.
type ProfileInput struct {
	LogoURL      string   `json:"logoUrl"`
	Description  string   `json:"description"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	WhatsApp     string   `json:"whatsapp"`
	ServiceAreas []string `json:"serviceAreas"`
}

// ProfileService reads and saves business profiles.
//
// User.Profile is the record the dashboard reads. Every save is mirrored to
// the standalone business profile key, which nothing reads back for logic.
type ProfileService struct {
	store ProfileStore
}

// NewProfileService constructs a ProfileService over store.
func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store}
}

// Get returns the user's profile with a freshly computed completion.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	p := user.Profile
	p.Completion = storage.CalculateProfileCompletion(user)
	return &p, nil
}

// Save overwrites the user's profile with in and returns the updated user.
func (s *ProfileService) Save(ctx context.Context, userID string, in ProfileInput) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.Profile = models.Profile{
		LogoURL:     strings.TrimSpace(in.LogoURL),
		Description: strings.TrimSpace(in.Description),
		Contact: models.Contact{
			Phone:    strings.TrimSpace(in.Phone),
			Email:    strings.TrimSpace(in.Email),
			WhatsApp: strings.TrimSpace(in.WhatsApp),
		},
		ServiceAreas: CleanServiceAreas(in.ServiceAreas),
	}
	user.Profile.Completion = storage.CalculateProfileCompletion(user)

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	mirror := models.BusinessProfile{
		Logo:         user.Profile.LogoURL,
		Description:  user.Profile.Description,
		Phone:        user.Profile.Contact.Phone,
		Email:        user.Profile.Contact.Email,
		ServiceAreas: user.Profile.ServiceAreas,
	}
	if wa := user.Profile.Contact.WhatsApp; wa != "" {
		mirror.WhatsApp = &wa
	}
	if err := s.store.SaveBusinessProfile(ctx, mirror); err != nil {
		return nil, err
	}
	return user, nil
}

// ParseServiceAreas splits a comma separated list of areas.
func ParseServiceAreas(s string) []string {
	return CleanServiceAreas(strings.Split(s, ","))
}

// CleanServiceAreas trims each area and drops blanks and repeats, keeping
// first-seen order.
func CleanServiceAreas(areas []string) []string {
	out := make([]string, 0, len(areas))
	seen := make(map[string]struct{}, len(areas))
	for _, a := range areas {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		key := strings.ToLower(a)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
