package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a system user.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string `json:"-"`
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserView is the only shape of a user that leaves the service.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View strips credentials from the user.
func (u User) View() UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CodePurpose selects one of the two code slots a user has.
type CodePurpose string

const (
	PurposeUpdate CodePurpose = "update"
	PurposeReset  CodePurpose = "reset"
)

// VerificationCode is a pending one-time code.
type VerificationCode struct {
	Code      string
	ExpiresAt time.Time
}

// Expired reports whether the code is past its deadline at now.
// A code checked exactly at ExpiresAt is still valid.
func (c VerificationCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
