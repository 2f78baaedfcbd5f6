// Package db wires the credential store to a storage backend: PostgreSQL
// with embedded goose migrations, or a process-local in-memory map.
package db

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/talentauth/internal/server/users"
)

// MemoryDSN selects the in-memory backend.
const MemoryDSN = "memory://"

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Users() users.Repository
	Close() error
}

// NewRepositoryManager picks a backend by DSN scheme. Postgres managers are
// returned with migrations already applied.
func NewRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {
	if strings.HasPrefix(dsn, MemoryDSN) {
		return NewInMemoryRepositoryManager(), nil
	}
	m, err := NewPostgresRepositoryManager(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return m, nil
}
