package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store using PostgreSQL. It exists for deployments
// that already run Postgres and do not want a file-backed database on disk.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a new Postgres-backed store from a DSN.
func NewPostgres(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS client_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at BIGINT NOT NULL
	)`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Get retrieves the value for a key.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM client_state WHERE key = $1`, key)

	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("scan state row: %w", err)
	}
	return value, true, nil
}

// Set stores or replaces the value for a key.
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO client_state (key, value, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT(key) DO UPDATE SET
		value = EXCLUDED.value,
		updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().Unix()); err != nil {
		return fmt.Errorf("upsert state %q: %w", key, err)
	}
	return nil
}

// Delete removes the given keys.
func (s *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = $1`, key); err != nil {
			return fmt.Errorf("delete state %q: %w", key, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
