package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository abstracts persistence concerns from the domain layer.
// Emails are compared case-insensitively; implementations store them lowercased.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, updatedAt time.Time) error
}

// CodeStore keeps at most one pending code per (user, purpose).
type CodeStore interface {
	// SaveCode overwrites any code already pending for the slot.
	SaveCode(ctx context.Context, userID uuid.UUID, purpose CodePurpose, code VerificationCode) error
	// GetCode returns ErrNoPendingRequest when the slot is empty.
	GetCode(ctx context.Context, userID uuid.UUID, purpose CodePurpose) (VerificationCode, error)
	// ConsumeCode clears the slot only if it still holds code, otherwise it
	// returns ErrNoPendingRequest. Two callers racing with the same code
	// cannot both succeed.
	ConsumeCode(ctx context.Context, userID uuid.UUID, purpose CodePurpose, code string) error
}
