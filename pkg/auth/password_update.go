package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

func (s *passwordService) RequestUpdateCode(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.issueCode(ctx, user, PurposeUpdate)
}

func (s *passwordService) VerifyUpdateCode(ctx context.Context, userID uuid.UUID, code string) error {
	if code == "" {
		return ErrValidation("code is required")
	}
	if _, err := s.userByID(ctx, userID); err != nil {
		return err
	}
	return s.checkCode(ctx, userID, PurposeUpdate, code)
}

func (s *passwordService) CompletePasswordUpdate(ctx context.Context, userID uuid.UUID, currentPassword, newPassword, code string) error {
	if currentPassword == "" || newPassword == "" || code == "" {
		return ErrValidation("currentPassword, newPassword and verificationCode are required")
	}
	user, err := s.userByID(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := s.hasher.Verify(currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}
	if err := s.checkCode(ctx, userID, PurposeUpdate, code); err != nil {
		return err
	}
	return s.changePassword(ctx, user, PurposeUpdate, code, newPassword)
}
