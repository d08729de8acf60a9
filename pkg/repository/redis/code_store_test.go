package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/fintrack/pkg/auth"
)

func newTestStore(t *testing.T) (*CodeStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCodeStore(client, ""), mr
}

func TestCodeStore_SaveGetOverwrite(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	id := uuid.New()
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Millisecond).UTC()

	_, err := s.GetCode(ctx, id, auth.PurposeUpdate)
	assert.ErrorIs(t, err, auth.ErrNoPendingRequest)

	require.NoError(t, s.SaveCode(ctx, id, auth.PurposeUpdate, auth.VerificationCode{Code: "111111", ExpiresAt: exp}))
	require.NoError(t, s.SaveCode(ctx, id, auth.PurposeUpdate, auth.VerificationCode{Code: "222222", ExpiresAt: exp}))

	got, err := s.GetCode(ctx, id, auth.PurposeUpdate)
	require.NoError(t, err)
	assert.Equal(t, "222222", got.Code)
	assert.True(t, got.ExpiresAt.Equal(exp))

	key := DefaultPrefix + ":update:" + id.String()
	assert.True(t, mr.Exists(key))
	assert.Greater(t, mr.TTL(key), 15*time.Minute)

	_, err = s.GetCode(ctx, id, auth.PurposeReset)
	assert.ErrorIs(t, err, auth.ErrNoPendingRequest)
}

func TestCodeStore_ConsumeOnce(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	id := uuid.New()
	require.NoError(t, s.SaveCode(ctx, id, auth.PurposeReset, auth.VerificationCode{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)}))

	assert.ErrorIs(t, s.ConsumeCode(ctx, id, auth.PurposeReset, "000000"), auth.ErrNoPendingRequest)
	require.NoError(t, s.ConsumeCode(ctx, id, auth.PurposeReset, "123456"))
	assert.ErrorIs(t, s.ConsumeCode(ctx, id, auth.PurposeReset, "123456"), auth.ErrNoPendingRequest)

	_, err := s.GetCode(ctx, id, auth.PurposeReset)
	assert.ErrorIs(t, err, auth.ErrNoPendingRequest)
}

func TestCodeStore_KeyExpires(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	id := uuid.New()
	require.NoError(t, s.SaveCode(ctx, id, auth.PurposeUpdate, auth.VerificationCode{Code: "123456", ExpiresAt: time.Now().Add(15 * time.Minute)}))

	mr.FastForward(15*time.Minute + expiryGrace + time.Second)

	_, err := s.GetCode(ctx, id, auth.PurposeUpdate)
	assert.ErrorIs(t, err, auth.ErrNoPendingRequest)
}

func TestCodeStore_Unavailable(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()

	err := s.SaveCode(context.Background(), uuid.New(), auth.PurposeUpdate, auth.VerificationCode{Code: "1", ExpiresAt: time.Now()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrNoPendingRequest)
}
