// Package users is the credential store: one record per user with a bcrypt
// password digest, looked up by normalized email or id.
package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/talentauth/internal/common"
	"github.com/google/uuid"
)

// NewUser is the input to Store.Create. Password is plaintext and is dropped
// once hashed.
type NewUser struct {
	Email    string
	Password string
	FullName string
	Role     Role
	Phone    string
}

// Store implements the credential store operations on top of a Repository.
type Store struct {
	repo        Repository
	hasher      PasswordHasher
	dummyDigest string
	now         func() time.Time
	newID       func() string
}

// NewStore builds a Store. It hashes a throwaway password once so that
// VerifyPassword(nil, ...) pays the same bcrypt cost as a real check.
func NewStore(repo Repository, hasher PasswordHasher) (*Store, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("dummy digest: %w", err)
	}

	return &Store{
		repo:        repo,
		hasher:      hasher,
		dummyDigest: dummy,
		now:         time.Now,
		newID:       uuid.NewString,
	}, nil
}

// FindByEmail matches the trimmed, lower-cased email exactly.
func (s *Store) FindByEmail(ctx context.Context, email string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, common.ErrNotFound
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *Store) FindByID(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, common.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Create validates nu, hashes the password and persists the user. A taken
// email fails with common.ErrDuplicateIdentity.
func (s *Store) Create(ctx context.Context, nu NewUser) (*User, error) {
	email := NormalizeEmail(nu.Email)
	if email == "" || nu.Password == "" {
		return nil, common.NewInputError("Email and password are required")
	}

	fullName := strings.TrimSpace(nu.FullName)
	if fullName == "" {
		return nil, common.NewInputError("Full name is required")
	}

	role := nu.Role
	if role == "" {
		role = DefaultRole
	}
	if !role.Valid() {
		return nil, common.NewInputError(fmt.Sprintf("Unknown role %q", string(role)))
	}

	digest, err := s.hasher.Hash(nu.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:             s.newID(),
		Email:          email,
		PasswordDigest: digest,
		FullName:       fullName,
		Phone:          strings.TrimSpace(nu.Phone),
		Role:           role,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyPassword reports whether password matches the user's digest. A nil
// user is checked against a dummy digest and always fails, taking as long as
// a real mismatch.
func (s *Store) VerifyPassword(user *User, password string) bool {
	if user == nil {
		s.hasher.Compare(s.dummyDigest, password)
		return false
	}
	return s.hasher.Compare(user.PasswordDigest, password)
}
