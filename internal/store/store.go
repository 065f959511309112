// Package store provides durable client-side key-value state persistence.
//
// It is the server-side analog of the browser localStorage the web client
// used: a handful of fixed keys (session token, user record, anonymous
// client id) that must survive restarts until explicitly cleared.
package store

import "context"

// Store is the interface for persisting client state entries.
type Store interface {
	// Get retrieves the value for a key. The second return value is false
	// when the key is absent; absence is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores or replaces the value for a key.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Deleting an absent key is not an error.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
