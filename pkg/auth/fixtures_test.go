package auth_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/fintrack/pkg/auth"
	"github.com/artem13815/fintrack/pkg/repository/memory"
	"github.com/artem13815/fintrack/pkg/security/password"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// sequence hands out 100001, 100002, ... so each request gets a distinct code.
type sequence struct {
	mu   sync.Mutex
	next int
}

func (s *sequence) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%06d", 100000+s.next), nil
}

type sentMail struct {
	To, Subject, Body string
}

type mailbox struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (m *mailbox) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *mailbox) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type stubTokens struct{}

func (stubTokens) Generate(ctx context.Context, user auth.User) (string, error) {
	return "token-" + user.ID.String(), nil
}

type env struct {
	store *memory.Store
	clock *clock
	codes *sequence
	mail  *mailbox

	auth     auth.AuthUseCase
	password auth.PasswordUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		store: memory.NewStore(),
		clock: newClock(),
		codes: &sequence{},
		mail:  &mailbox{},
	}
	hasher := password.NewHasher(bcrypt.MinCost)
	opts := []auth.Option{auth.WithClock(e.clock.Now)}
	e.auth = auth.NewAuthService(e.store, hasher, stubTokens{}, opts...)
	e.password = auth.NewPasswordService(e.store, e.store, hasher, e.codes, e.mail, opts...)
	return e
}

func (e *env) register(t *testing.T, email, pass string) auth.AuthResult {
	t.Helper()
	res, err := e.auth.Register(context.Background(), email, pass, "Test User")
	require.NoError(t, err)
	return res
}

// lastCode is the code most recently stored for the slot.
func (e *env) lastCode(t *testing.T, res auth.AuthResult, purpose auth.CodePurpose) string {
	t.Helper()
	vc, err := e.store.GetCode(context.Background(), res.User.ID, purpose)
	require.NoError(t, err)
	return vc.Code
}

var errSMTPDown = errors.New("smtp down")
