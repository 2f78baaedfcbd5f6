package client

import (
	"context"

	"github.com/dmitrijs2005/talentauth/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

// TokenSource yields the persisted session token, or "" when there is none.
type TokenSource interface {
	Load(ctx context.Context) (string, error)
}
