package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/artem13815/fintrack/pkg/auth"
)

const foreignKeyViolation = "23503"

// CodeStore keeps pending codes in verification_codes, one row per (user, purpose).
type CodeStore struct {
	db DB
}

func NewCodeStore(db DB) *CodeStore {
	return &CodeStore{db: db}
}

func (s *CodeStore) SaveCode(ctx context.Context, userID uuid.UUID, purpose auth.CodePurpose, code auth.VerificationCode) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO verification_codes (user_id, purpose, code, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, purpose) DO UPDATE
		SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at
	`, userID, string(purpose), code.Code, code.ExpiresAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return auth.ErrNotFound
		}
		return fmt.Errorf("save code: %w", err)
	}
	return nil
}

func (s *CodeStore) GetCode(ctx context.Context, userID uuid.UUID, purpose auth.CodePurpose) (auth.VerificationCode, error) {
	var c auth.VerificationCode
	err := s.db.QueryRow(ctx, `
		SELECT code, expires_at FROM verification_codes WHERE user_id = $1 AND purpose = $2
	`, userID, string(purpose)).Scan(&c.Code, &c.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.VerificationCode{}, auth.ErrNoPendingRequest
		}
		return auth.VerificationCode{}, fmt.Errorf("get code: %w", err)
	}
	c.ExpiresAt = c.ExpiresAt.UTC()
	return c, nil
}

func (s *CodeStore) ConsumeCode(ctx context.Context, userID uuid.UUID, purpose auth.CodePurpose, code string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM verification_codes WHERE user_id = $1 AND purpose = $2 AND code = $3
	`, userID, string(purpose), code)
	if err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrNoPendingRequest
	}
	return nil
}
