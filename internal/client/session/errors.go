package session

import "errors"

var (
	// ErrNotStarted is returned when an operation is called before Start
	// has completed.
	ErrNotStarted = errors.New("session manager not started")

	// ErrOperationInProgress is returned when a sign-in, sign-up or
	// sign-out is requested while another one is still running.
	ErrOperationInProgress = errors.New("another session operation is in progress")

	// ErrInvalidRole is returned by SignUp for a role outside talent and
	// recruiter.
	ErrInvalidRole = errors.New("role must be talent or recruiter")
)
