package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"walletmap/pkg/platform/sentinel"
)

// PostgresStore persists mappings in a single-table Postgres schema for
// deployments that already run Postgres and do not want a Redis dependency.
// ON CONFLICT DO NOTHING gives the same first-writer-wins semantics as SETNX.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an existing database handle; the handle lifecycle is
// managed by the caller.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the mappings table if it does not exist. Called once at
// startup and by integration tests.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS wallet_mappings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate wallet_mappings: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM wallet_mappings WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("postgres get %q: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) SetNX(ctx context.Context, key, value string) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO wallet_mappings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING
	`, key, value)
	if err != nil {
		return fmt.Errorf("postgres setnx %q: %w", key, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres setnx %q: %w", key, err)
	}
	if rows == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wallet_mappings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("postgres set %q: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
