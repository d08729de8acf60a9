package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PasswordUseCase covers both ways of changing a password.
//
// Update is for a signed-in user and needs the current password;
// reset is for a user who lost it and is keyed by e-mail only.
// Each is three calls: request a code, verify it, complete the change.
// Verify never consumes the code; only the completing call does, and it
// re-runs every check because nothing remembers an earlier verify.
type PasswordUseCase interface {
	RequestUpdateCode(ctx context.Context, userID uuid.UUID) error
	VerifyUpdateCode(ctx context.Context, userID uuid.UUID, code string) error
	CompletePasswordUpdate(ctx context.Context, userID uuid.UUID, currentPassword, newPassword, code string) error

	RequestReset(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	CompleteReset(ctx context.Context, email, code, newPassword string) error
}

type passwordService struct {
	users    UserRepository
	codes    CodeStore
	hasher   PasswordHasher
	codegen  CodeGenerator
	notifier Notifier
	opts     options
}

func NewPasswordService(
	users UserRepository,
	codes CodeStore,
	hasher PasswordHasher,
	codegen CodeGenerator,
	notifier Notifier,
	opts ...Option,
) PasswordUseCase {
	return &passwordService{
		users:    users,
		codes:    codes,
		hasher:   hasher,
		codegen:  codegen,
		notifier: notifier,
		opts:     newOptions(opts),
	}
}

// issueCode writes a fresh code into the slot, replacing any pending one, and mails it.
func (s *passwordService) issueCode(ctx context.Context, user User, purpose CodePurpose) error {
	code, err := s.codegen.Generate()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	vc := VerificationCode{Code: code, ExpiresAt: s.opts.clock().Add(s.opts.codeTTL)}

	storeCtx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	if err := s.codes.SaveCode(storeCtx, user.ID, purpose, vc); err != nil {
		return fmt.Errorf("save %s code: %w", purpose, err)
	}

	subject, body, err := codeMessage(purpose, user, code, s.opts.codeTTL)
	if err != nil {
		return err
	}
	s.send(ctx, user, subject, body, "purpose", string(purpose))
	return nil
}

// send is best effort: the code is already stored, so a mail failure is only logged.
func (s *passwordService) send(ctx context.Context, user User, subject, body string, args ...any) {
	mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.mailTimeout)
	defer cancel()
	if err := s.notifier.Send(mailCtx, user.Email, subject, body); err != nil {
		args = append(args, "user_id", user.ID.String(), "error", err)
		s.opts.log.Warn(ctx, "send email failed", args...)
	}
}

// checkCode runs the pending, match and expiry checks in that order.
func (s *passwordService) checkCode(ctx context.Context, userID uuid.UUID, purpose CodePurpose, code string) error {
	storeCtx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	stored, err := s.codes.GetCode(storeCtx, userID, purpose)
	if err != nil {
		if errors.Is(err, ErrNoPendingRequest) {
			return ErrNoPendingRequest
		}
		return fmt.Errorf("load %s code: %w", purpose, err)
	}
	if subtle.ConstantTimeCompare([]byte(stored.Code), []byte(code)) != 1 {
		return ErrInvalidCode
	}
	if stored.Expired(s.opts.clock()) {
		return ErrCodeExpired
	}
	return nil
}

// changePassword consumes the code and stores the new hash. The hash is
// computed first so a hashing failure does not burn the code.
func (s *passwordService) changePassword(ctx context.Context, user User, purpose CodePurpose, code, newPassword string) error {
	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	storeCtx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	if err := s.codes.ConsumeCode(storeCtx, user.ID, purpose, code); err != nil {
		if errors.Is(err, ErrNoPendingRequest) {
			return ErrNoPendingRequest
		}
		return fmt.Errorf("consume %s code: %w", purpose, err)
	}
	if err := s.users.UpdatePassword(storeCtx, user.ID, passwordHash, s.opts.clock()); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.opts.log.Info(ctx, "password changed", "user_id", user.ID.String(), "purpose", string(purpose))

	subject, body, err := confirmationMessage(purpose, user)
	if err != nil {
		s.opts.log.Warn(ctx, "render confirmation email failed", "error", err)
		return nil
	}
	s.send(ctx, user, subject, body, "purpose", string(purpose), "kind", "confirmation")
	return nil
}

func (s *passwordService) userByID(ctx context.Context, id uuid.UUID) (User, error) {
	ctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	user, err := s.users.GetByID(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, err
}

func (s *passwordService) userByEmail(ctx context.Context, email string) (User, error) {
	ctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, err
}
