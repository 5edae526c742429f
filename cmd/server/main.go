// Package main initializes and starts the business directory HTTP server,
// setting up configuration, logging, storage, services and handlers.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/cipromart/directory/internal/app"
	"github.com/cipromart/directory/internal/config"
	"github.com/cipromart/directory/internal/logger"
	"github.com/cipromart/directory/internal/server/handler/http"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the configured backend and build the services.
	a, err := app.Open(ctx, options, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init storage", zap.Error(err))
	}
	defer func() { _ = a.Close() }()

	// Build the router with middleware and routes.
	router := http.NewRouter(http.Handlers{
		Auth:     &http.AuthHandler{AccountService: a.Accounts, Logger: zapLogger},
		Billing:  &http.BillingHandler{BillingService: a.Billing, Logger: zapLogger},
		Services: &http.ServicesHandler{CatalogService: a.Catalog, Logger: zapLogger},
		Profile:  &http.ProfileHandler{ProfileService: a.Profiles, BusinessProfile: a.Store, Logger: zapLogger},
		Sessions: a.Store,
	}, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("shutdown", zap.Error(err))
		}
	}()

	zapLogger.Info("starting server",
		zap.String("addr", options.Addr),
		zap.String("storage", options.Storage),
		zap.Bool("tls", options.TLSCert != ""))
	if options.TLSCert != "" {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
