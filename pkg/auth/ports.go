package auth

import (
	"context"

	"github.com/google/uuid"
)

// TokenGenerator abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

// TokenVerifier checks a token and returns the identity it carries.
// Every failure is reported as ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// Identity is what a verified token proves about the caller.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// PasswordHasher is a salted one-way password transform.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify returns false, nil on mismatch and an error only for a malformed hash.
	Verify(plaintext, hash string) (bool, error)
}

// CodeGenerator produces one-time numeric codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// Notifier delivers e-mail. body is HTML.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity attached by the auth middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
