package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cipromart/directory/internal/models"
	"github.com/cipromart/directory/internal/validate"
)

// CatalogStore defines the persistence operations needed by CatalogService.
type CatalogStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	AddService(ctx context.Context, userID string, in models.ServiceData) (*models.Service, error)
	UpdateService(ctx context.Context, userID, serviceID string, patch models.ServicePatch) error
	DeleteService(ctx context.Context, userID, serviceID string) error
}

// CatalogService manages the services a business lists.
type CatalogService struct {
	store CatalogStore
}

// NewCatalogService constructs a CatalogService over store.
func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// List returns the user's services in the order they were added.
func (s *CatalogService) List(ctx context.Context, userID string) ([]models.Service, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Services == nil {
		return []models.Service{}, nil
	}
	return user.Services, nil
}

// Add validates in and appends it, unless the user's package listing limit
// has been reached.
func (s *CatalogService) Add(ctx context.Context, userID string, in models.ServiceData) (*models.Service, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validate.ServiceForm(in); err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if pkg, ok := models.LookupPackage(user.Package); ok && pkg.MaxServices > 0 && len(user.Services) >= pkg.MaxServices {
		return nil, fmt.Errorf("%w: %s allows %d", ErrServiceLimitReached, pkg.Name, pkg.MaxServices)
	}

	svc, err := s.store.AddService(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		// The user vanished between the two reads.
		return nil, ErrUserNotFound
	}
	return svc, nil
}

// Update applies patch to one of the user's services. Name and description
// may be changed but not blanked.
func (s *CatalogService) Update(ctx context.Context, userID, serviceID string, patch models.ServicePatch) (*models.Service, error) {
	errs := validate.Errors{}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		errs["name"] = "Service name is required"
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		errs["description"] = "Service description is required"
	}
	if len(errs) > 0 {
		return nil, errs
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	idx := -1
	for i := range user.Services {
		if user.Services[i].ID == serviceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrServiceNotFound
	}

	if err := s.store.UpdateService(ctx, userID, serviceID, patch); err != nil {
		return nil, err
	}
	updated := user.Services[idx]
	patch.Apply(&updated)
	return &updated, nil
}

// Delete removes one of the user's services. Deleting an unknown service
// is not an error.
func (s *CatalogService) Delete(ctx context.Context, userID, serviceID string) error {
	return s.store.DeleteService(ctx, userID, serviceID)
}
