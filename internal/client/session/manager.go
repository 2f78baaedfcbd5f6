// Package session is the client-side session lifecycle: it restores a
// persisted token on startup, signs users in, up and out, and drops the
// session when the server stops accepting its token.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/talentauth/internal/client/client"
	"github.com/dmitrijs2005/talentauth/internal/client/models"
	"github.com/dmitrijs2005/talentauth/internal/common"
	"github.com/dmitrijs2005/talentauth/internal/logging"
)

// AuthClient is the subset of client.Client the manager calls.
type AuthClient interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

// SignUpRole is the role a user may pick at sign-up. The server knows a
// wider set; the client offers only these two.
type SignUpRole string

const (
	SignUpTalent    SignUpRole = models.RoleTalent
	SignUpRecruiter SignUpRole = models.RoleRecruiter
)

func (r SignUpRole) Valid() bool {
	return r == SignUpTalent || r == SignUpRecruiter
}

// ParseSignUpRole accepts "talent" or "recruiter", case-insensitively.
func ParseSignUpRole(s string) (SignUpRole, error) {
	r := SignUpRole(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

type SignUpInput struct {
	Email    string
	Password string
	FullName string
	Role     SignUpRole
	Phone    string
}

type Manager struct {
	client   AuthClient
	store    TokenStore
	notifier Notifier
	logger   logging.Logger

	mu    sync.RWMutex
	state State
	user  *models.User

	startOnce sync.Once
	ready     chan struct{}

	// busy is set while a sign-in, sign-up, sign-out or refresh runs.
	busy atomic.Bool
}

func NewManager(c AuthClient, store TokenStore, n Notifier, l logging.Logger) *Manager {
	if n == nil {
		n = NotifierFuncs{}
	}
	if l == nil {
		l = logging.NewNopLogger()
	}
	return &Manager{
		client:   c,
		store:    store,
		notifier: n,
		logger:   l.With("module", "session"),
		state:    StateLoading,
		ready:    make(chan struct{}),
	}
}

// Start restores the persisted session. It runs once per Manager; later
// calls return immediately. Ready is closed when it has finished.
func (m *Manager) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		defer close(m.ready)
		m.restore(ctx)
	})
}

// Ready is closed once Start has settled the initial state.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

func (m *Manager) restore(ctx context.Context) {
	token, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "cannot read stored session", "error", err)
		m.discard(ctx)
		m.setState(StateAnonymous, nil)
		return
	}
	if token == "" {
		m.setState(StateAnonymous, nil)
		return
	}

	user, err := m.client.Me(ctx)
	if err != nil {
		m.logger.Info(ctx, "stored session rejected", "error", err)
		m.discard(ctx)
		m.setState(StateAnonymous, nil)
		return
	}

	m.setState(StateAuthenticated, user)
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns a copy of the signed-in user, if any.
func (m *Manager) User() (*models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateAuthenticated || m.user == nil {
		return nil, false
	}
	u := *m.user
	return &u, true
}

func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	s, err := m.client.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		m.logger.Info(ctx, "sign-in failed", "error", err)
		m.notifier.Failure(client.MessageOf(err, MsgSignInFailure))
		return err
	}

	if err := m.establish(ctx, s); err != nil {
		m.logger.Error(ctx, "cannot keep session", "error", err)
		m.notifier.Failure(MsgSignInFailure)
		return err
	}

	m.notifier.Success(MsgSignInSuccess)
	return nil
}

func (m *Manager) SignUp(ctx context.Context, in SignUpInput) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if !in.Role.Valid() {
		m.notifier.Failure(MsgSignUpFailure + ": role must be talent or recruiter")
		return ErrInvalidRole
	}

	s, err := m.client.Register(ctx, models.RegisterRequest{
		Email:    in.Email,
		Password: in.Password,
		FullName: in.FullName,
		Role:     string(in.Role),
		Phone:    in.Phone,
	})
	if err != nil {
		m.logger.Info(ctx, "sign-up failed", "error", err)
		m.notifier.Failure(client.MessageOf(err, MsgSignUpFailure))
		return err
	}

	if err := m.establish(ctx, s); err != nil {
		m.logger.Error(ctx, "cannot keep session", "error", err)
		m.notifier.Failure(MsgSignUpFailure)
		return err
	}

	m.notifier.Success(MsgSignUpSuccess)
	return nil
}

// SignOut always ends in Anonymous. The server call is best effort and its
// failure is not reported.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if err := m.client.Logout(ctx); err != nil {
		m.logger.Debug(ctx, "server logout failed, ignoring", "error", err)
	}

	m.discard(ctx)
	m.setState(StateAnonymous, nil)
	m.notifier.Success(MsgSignOutSuccess)
	return nil
}

// Refresh reloads the signed-in user from the server. A 401 invalidates
// the session through the client's unauthorized handler.
func (m *Manager) Refresh(ctx context.Context) (*models.User, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()

	if m.State() != StateAuthenticated {
		return nil, common.ErrUnauthenticated
	}

	user, err := m.client.Me(ctx)
	if err != nil {
		return nil, err
	}

	m.setState(StateAuthenticated, user)
	u := *user
	return &u, nil
}

// Invalidate drops the session after the server rejected its token. It is
// meant to be registered with client.HTTPClient.SetUnauthorizedHandler.
func (m *Manager) Invalidate(ctx context.Context) {
	m.discard(ctx)

	m.mu.Lock()
	was := m.state
	m.state = StateAnonymous
	m.user = nil
	m.mu.Unlock()

	if was == StateAuthenticated {
		m.logger.Info(ctx, "session invalidated by server")
		m.notifier.Failure(MsgSessionExpired)
	}
}

func (m *Manager) begin() error {
	select {
	case <-m.ready:
	default:
		return ErrNotStarted
	}

	if !m.busy.CompareAndSwap(false, true) {
		m.notifier.Failure(MsgBusy)
		return ErrOperationInProgress
	}
	return nil
}

func (m *Manager) end() {
	m.busy.Store(false)
}

func (m *Manager) establish(ctx context.Context, s *models.Session) error {
	if s == nil || s.Token == "" || s.User == nil {
		return errors.New("server returned an incomplete session")
	}
	if err := m.store.Save(ctx, s.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return m.setState(StateAuthenticated, s.User)
}

func (m *Manager) discard(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error(ctx, "cannot clear stored session", "error", err)
	}
}

func (m *Manager) setState(to State, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !canTransition(m.state, to) {
		return fmt.Errorf("invalid session transition %s -> %s", m.state, to)
	}

	m.state = to
	if to == StateAuthenticated {
		u := *user
		m.user = &u
	} else {
		m.user = nil
	}
	return nil
}
