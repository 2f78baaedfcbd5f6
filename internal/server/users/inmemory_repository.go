package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/talentauth/internal/common"
)

// InMemoryRepository keeps users in process memory. The check-then-insert
// in Create runs under one lock, so it is as atomic as a unique index.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return common.ErrDuplicateIdentity
	}

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *InMemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	u := *stored
	return &u, nil
}

// Delete removes a user. The HTTP API never deletes users; tests use it to
// model an account that disappeared while a token was still live.
func (r *InMemoryRepository) Delete(_ context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}
