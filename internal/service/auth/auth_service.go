package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/Domenick1991/dorado/internal/repository"
	"github.com/Domenick1991/dorado/internal/security"
)

type AuthUseCase interface {
	Register(ctx context.Context, email, password string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
}

// Session is a freshly issued token and the user it belongs to.
type Session struct {
	Token string
	User  *domain.User
}

type AuthService struct {
	users             repository.UserRepository
	hasher            security.PasswordHasher
	tokens            security.TokenService
	minPasswordLength int
}

func NewAuthService(users repository.UserRepository, hasher security.PasswordHasher, tokens security.TokenService, minPasswordLength int) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, minPasswordLength: minPasswordLength}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if err := domain.ValidateCredentials(email, password, s.minPasswordLength); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: email already registered", domain.ErrAlreadyExists)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if err := domain.ValidateCredentials(email, password, s.minPasswordLength); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*Session, error) {
	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

var _ AuthUseCase = (*AuthService)(nil)
