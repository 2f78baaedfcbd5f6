// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal = errors.New("internal error")

	// Endpoint taxonomy. Each maps to exactly one HTTP status and error code.
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateIdentity  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")

	// Auth errors (malformed, forged or expired token).
	ErrInvalidToken = errors.New("invalid token")
)

// InputError carries a client-facing reason for a rejected request. It
// matches ErrInvalidInput under errors.Is.
type InputError struct {
	Reason string
}

// NewInputError returns an *InputError with the given reason.
func NewInputError(reason string) error {
	return &InputError{Reason: reason}
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
