// Package auth issues and verifies signed, expiring session tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/talentauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the absolute lifetime of a token. There is no sliding
// renewal.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Identity is what a token says about its holder.
type Identity struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

// Claims is the signed token payload: the identity plus iat and exp.
type Claims struct {
	Identity
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*TokenService)

// WithClock replaces time.Now for both issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService returns a service signing with secret. An empty secret
// falls back to common.DefaultSecretKey; a non-positive ttl to
// DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration, opts ...Option) *TokenService {
	if secret == "" {
		secret = common.DefaultSecretKey
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs id with HS256, stamping iat and exp = iat + ttl.
func (s *TokenService) Issue(id Identity) (string, error) {
	if id.UserID == "" {
		return "", errors.New("token subject is empty")
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the claims of a well-formed, correctly signed, unexpired
// token. Every failure wraps common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
