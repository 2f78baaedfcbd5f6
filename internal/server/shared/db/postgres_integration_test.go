//go:build integration

package db

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/talentauth/internal/common"
	"github.com/dmitrijs2005/talentauth/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("talentauth"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestPostgresStore_Integration(t *testing.T) {
	ctx := context.Background()
	m, err := NewRepositoryManager(ctx, startPostgres(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	// Migrations are idempotent.
	require.NoError(t, m.RunMigrations(ctx))

	store, err := users.NewStore(m.Users(), users.NewBcryptHasher(bcrypt.MinCost))
	require.NoError(t, err)

	created, err := store.Create(ctx, users.NewUser{Email: "Olga@Example.com", Password: "pw", FullName: "Olga"})
	require.NoError(t, err)
	assert.Equal(t, users.RoleTalent, created.Role)

	got, err := store.FindByEmail(ctx, "  OLGA@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Empty(t, got.Phone)
	assert.True(t, store.VerifyPassword(got, "pw"))

	got, err = store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "olga@example.com", got.Email)

	_, err = store.FindByID(ctx, "not-a-uuid")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.Create(ctx, users.NewUser{Email: "olga@example.com", Password: "x", FullName: "Other"})
	require.ErrorIs(t, err, common.ErrDuplicateIdentity)
}

func TestPostgresStore_ConcurrentRegistration(t *testing.T) {
	ctx := context.Background()
	m, err := NewRepositoryManager(ctx, startPostgres(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	store, err := users.NewStore(m.Users(), users.NewBcryptHasher(bcrypt.MinCost))
	require.NoError(t, err)

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, users.NewUser{Email: "race@example.com", Password: "pw", FullName: "R"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, common.ErrDuplicateIdentity)
	}
	assert.Equal(t, 1, ok)
}
