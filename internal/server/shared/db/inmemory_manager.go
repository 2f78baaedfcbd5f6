package db

import (
	"context"

	"github.com/dmitrijs2005/talentauth/internal/server/users"
)

type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
