// Package repository provides a PostgreSQL implementation of the storage
// backend: each document is one row of the kv_store table.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresKVRepository stores whole JSON documents keyed by name.
type PostgresKVRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresKVRepository creates a PostgresKVRepository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance with kv_store created.
func NewPostgresKVRepository(db *sql.DB) *PostgresKVRepository {
	return &PostgresKVRepository{DB: db}
}

// Get returns the document stored under key and whether it exists.
func (r *PostgresKVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.DB.QueryRowContext(ctx, `
		SELECT value FROM kv_store WHERE key = $1
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the document under key in a single statement.
// The value must be valid JSON; the column type rejects anything else.
func (r *PostgresKVRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = now()
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// Remove deletes the document under key. A missing key is not an error.
func (r *PostgresKVRepository) Remove(ctx context.Context, key string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("kv remove %s: %w", key, err)
	}
	return nil
}
