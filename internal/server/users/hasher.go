package users

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/talentauth/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt cost used unless configured otherwise.
const DefaultHashCost = 10

// PasswordHasher produces and checks salted one-way password digests.
type PasswordHasher interface {
	// Hash returns a digest that embeds its own salt and cost.
	Hash(password string) (string, error)

	// Compare reports whether password matches digest.
	Compare(digest, password string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.NewInputError("Password must be at most 72 bytes")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Compare relies on bcrypt's constant-time comparison. A malformed digest
// never matches.
func (h *BcryptHasher) Compare(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
