package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, email, password, fullName string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Profile(ctx context.Context, userID uuid.UUID) (UserView, error)
}

type AuthResult struct {
	User  UserView
	Token string
}

type authService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenGenerator
	opts   options
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenGenerator, opts ...Option) AuthUseCase {
	return &authService{repo: repo, hasher: hasher, tokens: tokens, opts: newOptions(opts)}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, email, password, fullName string) (AuthResult, error) {
	email = normalizeEmail(email)
	fullName = strings.TrimSpace(fullName)
	if email == "" || password == "" || fullName == "" {
		return AuthResult{}, ErrValidation("email, password and fullName are required")
	}

	if _, err := s.getByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, err
	}

	now := s.opts.clock()
	user := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	storeCtx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	// unique index still guards the race between lookup and insert
	if err := s.repo.Create(storeCtx, user); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return AuthResult{}, ErrUserAlreadyExists
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	s.opts.log.Info(ctx, "user registered", "user_id", user.ID.String())
	return AuthResult{User: user.View(), Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrValidation("email and password are required")
	}
	user, err := s.getByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}
	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return AuthResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{User: user.View(), Token: token}, nil
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (UserView, error) {
	storeCtx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	user, err := s.repo.GetByID(storeCtx, userID)
	if err != nil {
		return UserView{}, err
	}
	return user.View(), nil
}

func (s *authService) getByEmail(ctx context.Context, email string) (User, error) {
	ctx, cancel := s.opts.storeCtx(ctx)
	defer cancel()
	return s.repo.GetByEmail(ctx, email)
}
