// Package memory keeps users and codes in process memory.
// It backs STORE_DRIVER=memory and the service tests; data is lost on restart.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/fintrack/pkg/auth"
)

type slotKey struct {
	userID  uuid.UUID
	purpose auth.CodePurpose
}

// Store implements auth.UserRepository and auth.CodeStore.
type Store struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]auth.User
	byEmail map[string]uuid.UUID
	codes   map[slotKey]auth.VerificationCode
}

func NewStore() *Store {
	return &Store{
		users:   make(map[uuid.UUID]auth.User),
		byEmail: make(map[string]uuid.UUID),
		codes:   make(map[slotKey]auth.VerificationCode),
	}
}

func (s *Store) Create(ctx context.Context, user auth.User) error {
	email := strings.ToLower(user.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; ok {
		return auth.ErrUserAlreadyExists
	}
	user.Email = email
	s.users[user.ID] = user
	s.byEmail[email] = user.ID
	return nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return auth.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = updatedAt
	s.users[id] = u
	return nil
}

func (s *Store) SaveCode(ctx context.Context, userID uuid.UUID, purpose auth.CodePurpose, code auth.VerificationCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return auth.ErrNotFound
	}
	s.codes[slotKey{userID, purpose}] = code
	return nil
}

func (s *Store) GetCode(ctx context.Context, userID uuid.UUID, purpose auth.CodePurpose) (auth.VerificationCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.codes[slotKey{userID, purpose}]
	if !ok {
		return auth.VerificationCode{}, auth.ErrNoPendingRequest
	}
	return c, nil
}

func (s *Store) ConsumeCode(ctx context.Context, userID uuid.UUID, purpose auth.CodePurpose, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := slotKey{userID, purpose}
	c, ok := s.codes[k]
	if !ok || c.Code != code {
		return auth.ErrNoPendingRequest
	}
	delete(s.codes, k)
	return nil
}
