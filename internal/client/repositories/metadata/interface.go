// Package metadata is a small key/value table in the client's SQLite
// database. The session token lives here under a fixed key.
package metadata

import (
	"context"
)

type Repository interface {
	// Get reports ok=false for an absent key.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set inserts or overwrites key.
	Set(ctx context.Context, key, value string) error
	// Delete is a no-op for an absent key.
	Delete(ctx context.Context, key string) error
}
