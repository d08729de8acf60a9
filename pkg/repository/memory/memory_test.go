package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/fintrack/pkg/auth"
)

func seed(t *testing.T, s *Store) auth.User {
	t.Helper()
	u := auth.User{ID: uuid.New(), Email: "A@X.com", PasswordHash: "h", FullName: "A B"}
	require.NoError(t, s.Create(context.Background(), u))
	return u
}

func TestStore_UsersCaseInsensitive(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := seed(t, s)

	got, err := s.GetByEmail(ctx, "a@x.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "a@x.com", got.Email)

	err = s.Create(ctx, auth.User{ID: uuid.New(), Email: "a@x.com"})
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)

	_, err = s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestStore_UpdatePassword(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := seed(t, s)
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpdatePassword(ctx, u.ID, "h2", at))
	got, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "h2", got.PasswordHash)
	assert.Equal(t, at, got.UpdatedAt)

	assert.ErrorIs(t, s.UpdatePassword(ctx, uuid.New(), "x", at), auth.ErrNotFound)
}

func TestStore_CodeSlots(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := seed(t, s)
	exp := time.Now().Add(time.Minute)

	_, err := s.GetCode(ctx, u.ID, auth.PurposeUpdate)
	assert.ErrorIs(t, err, auth.ErrNoPendingRequest)

	require.NoError(t, s.SaveCode(ctx, u.ID, auth.PurposeUpdate, auth.VerificationCode{Code: "111111", ExpiresAt: exp}))
	require.NoError(t, s.SaveCode(ctx, u.ID, auth.PurposeUpdate, auth.VerificationCode{Code: "222222", ExpiresAt: exp}))
	require.NoError(t, s.SaveCode(ctx, u.ID, auth.PurposeReset, auth.VerificationCode{Code: "333333", ExpiresAt: exp}))

	got, err := s.GetCode(ctx, u.ID, auth.PurposeUpdate)
	require.NoError(t, err)
	assert.Equal(t, "222222", got.Code)

	assert.ErrorIs(t, s.ConsumeCode(ctx, u.ID, auth.PurposeUpdate, "111111"), auth.ErrNoPendingRequest)
	require.NoError(t, s.ConsumeCode(ctx, u.ID, auth.PurposeUpdate, "222222"))
	assert.ErrorIs(t, s.ConsumeCode(ctx, u.ID, auth.PurposeUpdate, "222222"), auth.ErrNoPendingRequest)

	// the other slot is untouched
	got, err = s.GetCode(ctx, u.ID, auth.PurposeReset)
	require.NoError(t, err)
	assert.Equal(t, "333333", got.Code)

	assert.ErrorIs(t, s.SaveCode(ctx, uuid.New(), auth.PurposeReset, got), auth.ErrNotFound)
}

func TestStore_ConsumeIsSingleWinner(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := seed(t, s)
	require.NoError(t, s.SaveCode(ctx, u.ID, auth.PurposeReset, auth.VerificationCode{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)}))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.ConsumeCode(ctx, u.ID, auth.PurposeReset, "123456") == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}
