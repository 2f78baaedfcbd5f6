package services

import (
	"context"

	"github.com/dmitrijs2005/talentauth/internal/server/users"
)

type userCtxKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// UserFromContext returns the user attached by WithUser.
func UserFromContext(ctx context.Context) (*users.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(*users.User)
	return u, ok && u != nil
}
