// Package services contains the server-side authentication use cases:
// registration, login and "who am I". It sits between the HTTP layer and
// the credential store and token service.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/talentauth/internal/common"
	"github.com/dmitrijs2005/talentauth/internal/server/auth"
	"github.com/dmitrijs2005/talentauth/internal/server/users"
)

// CredentialStore is the subset of *users.Store the service needs.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	FindByID(ctx context.Context, id string) (*users.User, error)
	Create(ctx context.Context, nu users.NewUser) (*users.User, error)
	VerifyPassword(user *users.User, password string) bool
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

type RegisterInput struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	FullName string     `json:"fullName"`
	Role     users.Role `json:"role,omitempty"`
	Phone    string     `json:"phone,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is returned by a successful register or login.
type Session struct {
	Token string      `json:"token"`
	User  *users.View `json:"user"`
}

type AuthService struct {
	store  CredentialStore
	tokens TokenIssuer
}

func NewAuthService(store CredentialStore, tokens TokenIssuer) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Register creates the user and signs them in. Errors are
// common.ErrInvalidInput, common.ErrDuplicateIdentity or an internal error.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	user, err := s.store.Create(ctx, users.NewUser{
		Email:    in.Email,
		Password: in.Password,
		FullName: in.FullName,
		Role:     in.Role,
		Phone:    in.Phone,
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) || errors.Is(err, common.ErrDuplicateIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.newSession(user)
}

// Login returns common.ErrInvalidCredentials for an unknown email and for a
// wrong password alike.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if in.Email == "" || in.Password == "" {
		return nil, common.ErrInvalidCredentials
	}

	user, err := s.store.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// user is nil when not found; VerifyPassword still spends a bcrypt round.
	if !s.store.VerifyPassword(user, in.Password) {
		return nil, common.ErrInvalidCredentials
	}

	return s.newSession(user)
}

// Me returns the user the auth gate attached to ctx.
func (s *AuthService) Me(ctx context.Context) (*users.View, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, common.ErrUnauthenticated
	}
	return user.View(), nil
}

// Authenticate loads the user a verified token refers to.
func (s *AuthService) Authenticate(ctx context.Context, userID string) (*users.User, error) {
	return s.store.FindByID(ctx, userID)
}

func (s *AuthService) newSession(user *users.User) (*Session, error) {
	token, err := s.tokens.Issue(auth.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
		Phone:    user.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{Token: token, User: user.View()}, nil
}
