package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", "eyJhbGciOi.payload.sig"))

	v, ok, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "eyJhbGciOi.payload.sig", v)
}

func TestGet_Absent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, ok, err := r.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", "old"))
	require.NoError(t, r.Set(ctx, "token", "new"))

	v, _, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestDelete_Idempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", "x"))
	require.NoError(t, r.Delete(ctx, "token"))

	_, ok, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Delete(ctx, "token"))
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, _, err := r.Get(ctx, "token")
	require.ErrorContains(t, err, "failed to get metadata[token]")

	err = r.Set(ctx, "token", "v")
	require.ErrorContains(t, err, "failed to set metadata[token]")

	err = r.Delete(ctx, "token")
	require.ErrorContains(t, err, "failed to delete metadata[token]")
}
