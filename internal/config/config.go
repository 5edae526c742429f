// Package config provides functionality for managing configuration options
// for the application using command-line flags, a config file, a .env file
// and environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable with -storage.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// Storage selects the backend: memory, file or postgres.
	Storage string

	// DataDir is where the file backend keeps its documents.
	DataDir string

	// DatabaseDSN holds the database connection string for the postgres backend.
	DatabaseDSN string

	// LogLevel is the minimum zap level.
	LogLevel string

	// PaymentDelay is how long the simulated payment gateway takes.
	PaymentDelay time.Duration

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string
	TLSKey  string

	// Config is the path to the config file (JSON, YAML or TOML).
	Config string
}

// file keys, flag names and env vars for each option
var bindings = []struct {
	key  string
	flag string
	env  string
}{
	{"server_address", "a", "SERVER_ADDRESS"},
	{"storage", "storage", "STORAGE"},
	{"data_dir", "data-dir", "DATA_DIR"},
	{"database_dsn", "d", "DATABASE_DSN"},
	{"log_level", "log-level", "LOG_LEVEL"},
	{"payment_delay", "payment-delay", "PAYMENT_DELAY"},
	{"tls_cert", "tls-cert", "TLS_CERT"},
	{"tls_key", "tls-key", "TLS_KEY"},
}

// Parse reads configuration from os.Args and the environment, exiting the
// process on invalid input.
func Parse() *Options {
	opts, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return opts
}

// Load resolves the options from, in increasing priority: defaults, the
// config file, flags given on the command line, then environment variables
// (a .env file in the working directory is loaded first and never overrides
// variables already set).
func Load(args []string) (*Options, error) {
	opts := &Options{}
	fs := flag.NewFlagSet("directory", flag.ContinueOnError)
	fs.StringVar(&opts.Addr, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&opts.Storage, "storage", StorageFile, "storage backend: memory | file | postgres")
	fs.StringVar(&opts.DataDir, "data-dir", "data", "directory for the file backend")
	fs.StringVar(&opts.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "log level")
	fs.DurationVar(&opts.PaymentDelay, "payment-delay", 3*time.Second, "simulated payment processing time")
	fs.StringVar(&opts.TLSCert, "tls-cert", "", "TLS certificate file (enables HTTPS)")
	fs.StringVar(&opts.TLSKey, "tls-key", "", "TLS private key file")
	fs.StringVar(&opts.Config, "config", "", "path to config file")
	fs.StringVar(&opts.Config, "c", "", "path to config file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		opts.Config = configPath
	}
	if opts.Config != "" {
		if _, err := os.Stat(opts.Config); err == nil {
			if err := applyFile(opts, opts.Config, explicit); err != nil {
				return nil, err
			}
		}
	}

	for _, b := range bindings {
		if v, ok := os.LookupEnv(b.env); ok && v != "" {
			if err := set(opts, b.key, v); err != nil {
				return nil, fmt.Errorf("%s: %w", b.env, err)
			}
		}
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func applyFile(opts *Options, path string, explicit map[string]bool) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}
	for _, b := range bindings {
		if explicit[b.flag] || !v.IsSet(b.key) {
			continue
		}
		if err := set(opts, b.key, v.GetString(b.key)); err != nil {
			return fmt.Errorf("config file %s: %w", b.key, err)
		}
	}
	return nil
}

func set(opts *Options, key, value string) error {
	switch key {
	case "server_address":
		opts.Addr = value
	case "storage":
		opts.Storage = value
	case "data_dir":
		opts.DataDir = value
	case "database_dsn":
		opts.DatabaseDSN = value
	case "log_level":
		opts.LogLevel = value
	case "payment_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		opts.PaymentDelay = d
	case "tls_cert":
		opts.TLSCert = value
	case "tls_key":
		opts.TLSKey = value
	}
	return nil
}

func (o *Options) validate() error {
	switch o.Storage {
	case StorageMemory, StorageFile:
	case StoragePostgres:
		if o.DatabaseDSN == "" {
			return errors.New("postgres storage requires a database DSN")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", o.Storage)
	}
	if (o.TLSCert == "") != (o.TLSKey == "") {
		return errors.New("TLS needs both a certificate and a key")
	}
	if o.PaymentDelay < 0 {
		return errors.New("payment delay must not be negative")
	}
	return nil
}
