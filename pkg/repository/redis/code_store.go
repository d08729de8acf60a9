// Package redis keeps pending verification codes in Redis hashes with a native TTL.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/artem13815/fintrack/pkg/auth"
)

const (
	DefaultPrefix = "fintrack:code"

	// keys outlive the code a little so a late check still reports "expired"
	// rather than "no pending request"
	expiryGrace = time.Minute
)

// consumeScript deletes the slot only if it still holds the submitted code.
var consumeScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], "code") == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type CodeStore struct {
	client redis.Cmdable
	prefix string
}

func NewCodeStore(client redis.Cmdable, prefix string) *CodeStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &CodeStore{client: client, prefix: prefix}
}

func (s *CodeStore) key(userID uuid.UUID, purpose auth.CodePurpose) string {
	return s.prefix + ":" + string(purpose) + ":" + userID.String()
}

func (s *CodeStore) SaveCode(ctx context.Context, userID uuid.UUID, purpose auth.CodePurpose, code auth.VerificationCode) error {
	key := s.key(userID, purpose)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "code", code.Code, "expires_at", code.ExpiresAt.UnixMilli())
		pipe.PExpireAt(ctx, key, code.ExpiresAt.Add(expiryGrace))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	return nil
}

func (s *CodeStore) GetCode(ctx context.Context, userID uuid.UUID, purpose auth.CodePurpose) (auth.VerificationCode, error) {
	fields, err := s.client.HGetAll(ctx, s.key(userID, purpose)).Result()
	if err != nil {
		return auth.VerificationCode{}, fmt.Errorf("get code: %w", err)
	}
	code, ok := fields["code"]
	if !ok {
		return auth.VerificationCode{}, auth.ErrNoPendingRequest
	}
	ms, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return auth.VerificationCode{}, fmt.Errorf("decode expires_at: %w", err)
	}
	return auth.VerificationCode{Code: code, ExpiresAt: time.UnixMilli(ms).UTC()}, nil
}

func (s *CodeStore) ConsumeCode(ctx context.Context, userID uuid.UUID, purpose auth.CodePurpose, code string) error {
	n, err := consumeScript.Run(ctx, s.client, []string{s.key(userID, purpose)}, code).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("consume code: %w", err)
	}
	if n == 0 {
		return auth.ErrNoPendingRequest
	}
	return nil
}
