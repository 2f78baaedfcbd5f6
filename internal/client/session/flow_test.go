package session

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/talentauth/internal/client/client"
	"github.com/dmitrijs2005/talentauth/internal/logging"
	"github.com/dmitrijs2005/talentauth/internal/server/auth"
	"github.com/dmitrijs2005/talentauth/internal/server/httpserver"
	"github.com/dmitrijs2005/talentauth/internal/server/services"
	"github.com/dmitrijs2005/talentauth/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// The tests below run the manager against the real server stack over HTTP.

type serverClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *serverClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *serverClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type stack struct {
	url   string
	repo  *users.InMemoryRepository
	clock *serverClock
}

func newStack(t *testing.T) *stack {
	t.Helper()
	repo := users.NewInMemoryRepository()
	creds, err := users.NewStore(repo, users.NewBcryptHasher(bcrypt.MinCost))
	require.NoError(t, err)

	clock := &serverClock{t: time.Now().Truncate(time.Second)}
	tokens := auth.NewTokenService("flow-secret", time.Hour, auth.WithClock(clock.Now))
	srv := httpserver.NewHTTPServer("127.0.0.1:0", logging.NewNopLogger(), services.NewAuthService(creds, tokens), tokens, nil)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &stack{url: ts.URL, repo: repo, clock: clock}
}

func (s *stack) manager(t *testing.T, store *MetadataTokenStore) (*Manager, *recorder) {
	t.Helper()
	hc := client.NewHTTPClient(s.url, store, 5*time.Second)
	rec := &recorder{}
	m := NewManager(hc, store, rec, nil)
	hc.SetUnauthorizedHandler(m.Invalidate)
	m.Start(context.Background())
	<-m.Ready()
	return m, rec
}

func TestFlow_SignUpThenRestart(t *testing.T) {
	st := newStack(t)
	store := newTokenStore(t)
	ctx := context.Background()

	m, _ := st.manager(t, store)
	require.Equal(t, StateAnonymous, m.State())

	require.NoError(t, m.SignUp(ctx, SignUpInput{
		Email: "dana@example.com", Password: "s3cret", FullName: "Dana", Role: SignUpRecruiter,
	}))
	u, ok := m.User()
	require.True(t, ok)
	assert.Equal(t, "recruiter", u.Role)

	// A fresh manager over the same storage picks the session back up.
	m2, _ := st.manager(t, store)
	assert.Equal(t, StateAuthenticated, m2.State())
	u2, _ := m2.User()
	assert.Equal(t, "dana@example.com", u2.Email)
}

func TestFlow_ExpiredTokenOnRestart(t *testing.T) {
	st := newStack(t)
	store := newTokenStore(t)
	ctx := context.Background()

	m, _ := st.manager(t, store)
	require.NoError(t, m.SignUp(ctx, SignUpInput{Email: "e@example.com", Password: "pw", FullName: "E", Role: SignUpTalent}))

	st.clock.Advance(2 * time.Hour)

	m2, rec := st.manager(t, store)
	assert.Equal(t, StateAnonymous, m2.State())
	tok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok, "rejected token is removed from storage")
	assert.Empty(t, rec.failures, "restore does not report the expired session")
}

func TestFlow_RevokedMidSession(t *testing.T) {
	st := newStack(t)
	store := newTokenStore(t)
	ctx := context.Background()

	m, rec := st.manager(t, store)
	require.NoError(t, m.SignUp(ctx, SignUpInput{Email: "f@example.com", Password: "pw", FullName: "F", Role: SignUpTalent}))
	u, _ := m.User()

	st.repo.Delete(ctx, u.ID)

	_, err := m.Refresh(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, StateAnonymous, m.State())
	assert.Equal(t, []string{MsgSessionExpired}, rec.failures)

	tok, _ := store.Load(ctx)
	assert.Empty(t, tok)
}

func TestFlow_SignInWrongPasswordThenSignOut(t *testing.T) {
	st := newStack(t)
	store := newTokenStore(t)
	ctx := context.Background()

	m, rec := st.manager(t, store)
	require.NoError(t, m.SignUp(ctx, SignUpInput{Email: "g@example.com", Password: "right", FullName: "G", Role: SignUpTalent}))
	require.NoError(t, m.SignOut(ctx))
	require.Equal(t, StateAnonymous, m.State())

	require.Error(t, m.SignIn(ctx, "g@example.com", "wrong"))
	assert.Equal(t, StateAnonymous, m.State())
	assert.Equal(t, "Invalid credentials", rec.failures[len(rec.failures)-1])

	require.NoError(t, m.SignIn(ctx, "G@Example.com", "right"))
	assert.Equal(t, StateAuthenticated, m.State())
}
