package users

import (
	"context"
)

// Repository persists users. Implementations must enforce email uniqueness
// themselves and report a clash as common.ErrDuplicateIdentity; absent rows
// are common.ErrNotFound. Emails passed in are already normalized.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
