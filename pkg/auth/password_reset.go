package auth

import (
	"context"
	"errors"
)

func (s *passwordService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrValidation("email is required")
	}
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.issueCode(ctx, user, PurposeReset)
}

func (s *passwordService) VerifyResetCode(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	if email == "" || code == "" {
		return ErrValidation("email and code are required")
	}
	user, err := s.resetTarget(ctx, email)
	if err != nil {
		return err
	}
	return s.checkCode(ctx, user.ID, PurposeReset, code)
}

func (s *passwordService) CompleteReset(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || code == "" || newPassword == "" {
		return ErrValidation("email, code and newPassword are required")
	}
	user, err := s.resetTarget(ctx, email)
	if err != nil {
		return err
	}
	if err := s.checkCode(ctx, user.ID, PurposeReset, code); err != nil {
		return err
	}
	return s.changePassword(ctx, user, PurposeReset, code, newPassword)
}

// resetTarget reports an unknown address as having nothing pending, so the
// verify and complete steps do not confirm which addresses are registered.
func (s *passwordService) resetTarget(ctx context.Context, email string) (User, error) {
	user, err := s.userByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrNoPendingRequest
	}
	return user, err
}
