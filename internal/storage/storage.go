// Package storage is the single authority over the persisted directory
// document: registered users, their services, and the session pointer.
// Every read decodes the whole document from a Backend and every mutation
// writes the whole document back.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cipromart/directory/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DataKey holds the AppData document.
	DataKey = "cipromart_data"
	// BusinessProfileKey holds the standalone business profile record.
	BusinessProfileKey = "businessProfile"
)

// ErrNoDocument is returned when the document is still missing right after
// it was initialized, which means the backend is dropping writes.
var ErrNoDocument = errors.New("storage document missing after initialization")

// Store reads and mutates the AppData document through a Backend.
//
// The store takes no lock across a read-modify-write. Two concurrent
// mutations each write back the document they read, and the later write wins.
type Store struct {
	backend      Backend
	log          *zap.Logger
	newID        func() string
	passwordCost int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIDGenerator replaces GenerateID for users, services and transactions.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithPasswordCost sets the bcrypt cost used when hashing passwords.
func WithPasswordCost(cost int) Option {
	return func(s *Store) { s.passwordCost = cost }
}

// New creates a Store over backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:      backend,
		log:          zap.NewNop(),
		newID:        GenerateID,
		passwordCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateID returns a UUIDv7 string: a millisecond timestamp followed by
// random bits, so IDs are unique and roughly ordered by creation time.
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// GenerateID returns a fresh ID from the store's generator.
func (s *Store) GenerateID() string {
	return s.newID()
}

func defaultData() *models.AppData {
	return &models.AppData{
		Users:   []models.User{},
		Session: models.Session{CurrentUserID: nil},
	}
}

// InitializeStorage writes an empty document if none exists yet. It never
// overwrites existing data, so it is safe to call on every start.
func (s *Store) InitializeStorage(ctx context.Context) error {
	_, ok, err := s.backend.Get(ctx, DataKey)
	if err != nil {
		return fmt.Errorf("check storage: %w", err)
	}
	if ok {
		return nil
	}
	s.log.Debug("initializing empty storage document", zap.String("key", DataKey))
	return s.SaveStorageData(ctx, defaultData())
}

// GetStorageData decodes the current document. A missing document is
// re-initialized once; a malformed one is returned as an error.
func (s *Store) GetStorageData(ctx context.Context) (*models.AppData, error) {
	raw, ok, err := s.backend.Get(ctx, DataKey)
	if err != nil {
		return nil, fmt.Errorf("read storage: %w", err)
	}
	if !ok {
		if err := s.InitializeStorage(ctx); err != nil {
			return nil, err
		}
		raw, ok, err = s.backend.Get(ctx, DataKey)
		if err != nil {
			return nil, fmt.Errorf("read storage: %w", err)
		}
		if !ok {
			return nil, ErrNoDocument
		}
	}

	var data models.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode storage document: %w", err)
	}
	if data.Users == nil {
		data.Users = []models.User{}
	}
	return &data, nil
}

// SaveStorageData replaces the whole document with data.
func (s *Store) SaveStorageData(ctx context.Context, data *models.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode storage document: %w", err)
	}
	if err := s.backend.Set(ctx, DataKey, raw); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	return nil
}
