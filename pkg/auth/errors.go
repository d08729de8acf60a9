package auth

import "errors"

// Common errors used by repositories and use cases.
var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrNoPendingRequest = errors.New("no pending request")
	ErrInvalidCode      = errors.New("invalid code")
	ErrCodeExpired      = errors.New("code expired")
)

// ErrValidation is returned for missing or malformed input.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
