package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/talentauth/internal/server/users"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/require"
)

func fastBackoff(t *testing.T) {
	t.Helper()
	orig := pingBackoff
	pingBackoff = func() retry.Backoff {
		return retry.WithMaxRetries(2, retry.NewConstant(time.Millisecond))
	}
	t.Cleanup(func() { pingBackoff = orig })
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func newPingDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestNewRepositoryManager_Memory(t *testing.T) {
	m, err := NewRepositoryManager(context.Background(), "memory://")
	require.NoError(t, err)
	require.IsType(t, &InMemoryRepositoryManager{}, m)
	require.NoError(t, m.RunMigrations(context.Background()))
	require.IsType(t, &users.InMemoryRepository{}, m.Users())
	require.NoError(t, m.Close())
}

func TestInMemoryManager_SharesRepository(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	require.Same(t, m.Users(), m.Users())
}

func TestPostgresManager_PingRetriedThenMigrates(t *testing.T) {
	fastBackoff(t)
	db, mock := newPingDB(t)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing()

	var gotDir string
	stubGoose(t, func(ctx context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	})

	m, err := newPostgresRepositoryManager(context.Background(), db)
	require.NoError(t, err)
	require.Equal(t, ".", gotDir)
	require.IsType(t, &users.PostgresRepository{}, m.Users())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresManager_PingGivesUp(t *testing.T) {
	fastBackoff(t)
	db, mock := newPingDB(t)

	for i := 0; i < 3; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}
	stubGoose(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		t.Fatal("migrations must not run without a reachable database")
		return nil
	})

	_, err := newPostgresRepositoryManager(context.Background(), db)
	require.Error(t, err)
	require.Contains(t, err.Error(), "db ping error")
	require.Contains(t, err.Error(), "connection refused")
}

func TestPostgresManager_MigrationError(t *testing.T) {
	fastBackoff(t)
	db, mock := newPingDB(t)
	mock.ExpectPing()

	stubGoose(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("bad migration")
	})

	_, err := newPostgresRepositoryManager(context.Background(), db)
	require.Error(t, err)
	require.Contains(t, err.Error(), "migration error: bad migration")
}

func TestPostgresManager_Close(t *testing.T) {
	db, mock := newPingDB(t)
	mock.ExpectClose()

	m := &PostgresRepositoryManager{db: db, users: users.NewPostgresRepository(db)}
	require.NoError(t, m.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}
