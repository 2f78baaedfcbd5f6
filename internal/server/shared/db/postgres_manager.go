package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/talentauth/internal/server/migrations"
	"github.com/dmitrijs2005/talentauth/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
)

const (
	pingBaseDelay  = 200 * time.Millisecond
	pingMaxRetries = 5
)

type PostgresRepositoryManager struct {
	db    *sql.DB
	users users.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// pingBackoff is a seam so tests do not sleep through real delays.
var pingBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(pingMaxRetries, retry.NewExponential(pingBaseDelay))
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

// NewPostgresRepositoryManager opens the pool, waits for the database to
// answer a ping and brings the schema up to date.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m, err := newPostgresRepositoryManager(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

func newPostgresRepositoryManager(ctx context.Context, db *sql.DB) (*PostgresRepositoryManager, error) {
	err := retry.Do(ctx, pingBackoff(), func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:    db,
		users: users.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
