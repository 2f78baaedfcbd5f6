package users

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/talentauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) (*Store, *InMemoryRepository) {
	t.Helper()
	repo := NewInMemoryRepository()
	s, err := NewStore(repo, NewBcryptHasher(bcrypt.MinCost))
	require.NoError(t, err)
	return s, repo
}

func TestCreate_HashesAndDefaultsRole(t *testing.T) {
	s, _ := newTestStore(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	u, err := s.Create(context.Background(), NewUser{
		Email:    "  Alice@Example.COM ",
		Password: "s3cret",
		FullName: "Alice Doe",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, RoleTalent, u.Role)
	assert.Equal(t, fixed, u.CreatedAt)
	assert.NotEqual(t, "s3cret", u.PasswordDigest)
	assert.True(t, strings.HasPrefix(u.PasswordDigest, "$2a$"))
	assert.True(t, s.VerifyPassword(u, "s3cret"))
	assert.False(t, s.VerifyPassword(u, "S3cret"))
}

func TestCreate_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   NewUser
	}{
		{"missing email", NewUser{Password: "p", FullName: "A"}},
		{"blank email", NewUser{Email: "   ", Password: "p", FullName: "A"}},
		{"missing password", NewUser{Email: "a@b.c", FullName: "A"}},
		{"missing full name", NewUser{Email: "a@b.c", Password: "p"}},
		{"unknown role", NewUser{Email: "a@b.c", Password: "p", FullName: "A", Role: "owner"}},
		{"password too long", NewUser{Email: "a@b.c", Password: strings.Repeat("x", 73), FullName: "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(ctx, tt.in)
			require.ErrorIs(t, err, common.ErrInvalidInput)
		})
	}
}

func TestCreate_AcceptsEveryStoredRole(t *testing.T) {
	s, _ := newTestStore(t)
	for i, r := range []Role{RoleTalent, RoleRecruiter, RoleAdmin} {
		u, err := s.Create(context.Background(), NewUser{
			Email: string(r) + "@x.io", Password: "p", FullName: "N", Role: r,
		})
		require.NoError(t, err, i)
		assert.Equal(t, r, u.Role)
	}
}

func TestCreate_DuplicateNormalizedEmail(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, NewUser{Email: "bob@example.com", Password: "p", FullName: "Bob"})
	require.NoError(t, err)

	_, err = s.Create(ctx, NewUser{Email: " BOB@Example.com\t", Password: "q", FullName: "Bob 2"})
	require.ErrorIs(t, err, common.ErrDuplicateIdentity)
}

func TestCreate_ConcurrentSameEmail_OnlyOneWins(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Create(ctx, NewUser{Email: "race@example.com", Password: "p", FullName: "R"})
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, common.ErrDuplicateIdentity):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}

func TestFind(t *testing.T) {
	s, repo := newTestStore(t)
	ctx := context.Background()

	u, err := s.Create(ctx, NewUser{Email: "carol@example.com", Password: "p", FullName: "Carol", Phone: "+1 555"})
	require.NoError(t, err)

	got, err := s.FindByEmail(ctx, " CAROL@example.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "+1 555", got.Phone)

	got, err = s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = s.FindByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = s.FindByEmail(ctx, "")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = s.FindByID(ctx, "")
	require.ErrorIs(t, err, common.ErrNotFound)

	repo.Delete(ctx, u.ID)
	_, err = s.FindByID(ctx, u.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestVerifyPassword_NilUserNeverMatches(t *testing.T) {
	s, _ := newTestStore(t)
	assert.False(t, s.VerifyPassword(nil, "not-a-real-password"))
	assert.False(t, s.VerifyPassword(nil, ""))
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	s, _ := newTestStore(t)
	assert.False(t, s.VerifyPassword(&User{PasswordDigest: "plain"}, "plain"))
}

func TestView_HasNoDigest(t *testing.T) {
	u := &User{ID: "1", Email: "a@b.c", PasswordDigest: "$2a$10$secret", FullName: "A", Role: RoleRecruiter}

	for _, v := range []any{u, u.View()} {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		assert.NotContains(t, string(b), "secret")
		assert.NotContains(t, strings.ToLower(string(b)), "digest")
	}

	b, err := json.Marshal(u.View())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","email":"a@b.c","fullName":"A","role":"recruiter"}`, string(b))
}

func TestNewBcryptHasher_OutOfRangeCostFallsBack(t *testing.T) {
	assert.Equal(t, DefaultHashCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultHashCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "x@y.z", NormalizeEmail("  X@Y.Z\n"))
	assert.Equal(t, "", NormalizeEmail("   "))
}
