// Package main runs the interactive business directory dashboard against
// the configured storage backend.
package main

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/cipromart/directory/internal/app"
	"github.com/cipromart/directory/internal/client"
	"github.com/cipromart/directory/internal/config"
	"github.com/cipromart/directory/internal/logger"
)

var (
	version   string
	buildDate string
)

// main parses configuration, opens the store and runs the shell on
// stdin/stdout.
func main() {
	options := config.Parse()

	fmt.Printf("Business Directory Client\nVersion: %s\nBuild Date: %s\n",
		cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))

	zl := logger.New()
	defer func() { _ = zl.Log.Sync() }()
	// Logs go to stderr; keep them quiet unless asked for.
	level := options.LogLevel
	if level == "info" {
		level = "warn"
	}
	if err := zl.Init(level); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.Open(ctx, options, zl.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = a.Close() }()

	sh := client.NewShell(os.Stdin, os.Stdout)
	sh.Accounts = a.Accounts
	sh.Billing = a.Billing
	sh.Catalog = a.Catalog
	sh.Profiles = a.Profiles
	sh.Business = a.Store

	fmt.Println("Type 'help' for a list of commands.")
	if err := sh.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
