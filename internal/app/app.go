// Package app wires the configured storage backend, the data store and the
// dashboard services together for both binaries.
package app

import (
	"context"
	"fmt"

	"github.com/cipromart/directory/internal/config"
	"github.com/cipromart/directory/internal/db"
	"github.com/cipromart/directory/internal/repository"
	"github.com/cipromart/directory/internal/service"
	"github.com/cipromart/directory/internal/storage"
	"go.uber.org/zap"
)

// App holds the initialized store and services.
type App struct {
	Store    *storage.Store
	Accounts *service.AccountService
	Billing  *service.BillingService
	Catalog  *service.CatalogService
	Profiles *service.ProfileService

	closers []func() error
}

// openPostgres is replaced in tests.
var openPostgres = func(ctx context.Context, dsn string) (storage.Backend, func() error, error) {
	conn, err := db.InitPostgres(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewPostgresKVRepository(conn), conn.Close, nil
}

// Open selects the backend named by opts.Storage, initializes the stored
// document and builds the services on top of it.
func Open(ctx context.Context, opts *config.Options, logger *zap.Logger, storeOpts ...storage.Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{}

	var backend storage.Backend
	switch opts.Storage {
	case config.StorageMemory:
		backend = storage.NewMemoryBackend()
	case config.StorageFile:
		backend = storage.NewFileBackend(opts.DataDir)
	case config.StoragePostgres:
		b, closeFn, err := openPostgres(ctx, opts.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("cannot init database: %w", err)
		}
		backend = b
		a.closers = append(a.closers, closeFn)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Storage)
	}
	logger.Info("storage backend selected", zap.String("storage", opts.Storage))

	a.Store = storage.New(backend, append([]storage.Option{storage.WithLogger(logger)}, storeOpts...)...)
	if err := a.Store.InitializeStorage(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Accounts = service.NewAccountService(a.Store)
	a.Billing = service.NewBillingService(a.Store, service.SimulatedGateway{Delay: opts.PaymentDelay}, logger)
	a.Catalog = service.NewCatalogService(a.Store)
	a.Profiles = service.NewProfileService(a.Store)
	return a, nil
}

// Close releases the backend's resources.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
