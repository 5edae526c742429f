package service

import (
	"context"
	"testing"

	"github.com/cipromart/directory/internal/models"
	"github.com/cipromart/directory/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	s := storage.New(storage.NewMemoryBackend(), storage.WithPasswordCost(bcrypt.MinCost))
	if err := s.InitializeStorage(context.Background()); err != nil {
		t.Fatalf("InitializeStorage: %v", err)
	}
	return s
}

func registration() models.RegistrationData {
	return models.RegistrationData{
		BusinessName: "Douala Roofing",
		Email:        "owner@roofing.cm",
		Phone:        "+237612345678",
		Password:     "secret1",
		Country:      "Cameroon",
	}
}

func mustCreate(t *testing.T, s *storage.Store, reg models.RegistrationData) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), reg)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func strPtr(s string) *string { return &s }
