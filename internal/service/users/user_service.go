package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/Domenick1991/dorado/internal/repository"
	"github.com/Domenick1991/dorado/internal/security"
)

type UserUseCase interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, email, password string) (*domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type UpdateUserInput struct {
	Email    *string
	Password *string
}

type UserService struct {
	repo              repository.UserRepository
	hasher            security.PasswordHasher
	minPasswordLength int
}

func NewUserService(repo repository.UserRepository, hasher security.PasswordHasher, minPasswordLength int) *UserService {
	return &UserService{repo: repo, hasher: hasher, minPasswordLength: minPasswordLength}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := domain.ValidateCredentials(email, password, s.minPasswordLength); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	var patch domain.UserPatch

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if !domain.ValidEmail(email) {
			return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
		}
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		patch.Email = &email
	}

	if input.Password != nil {
		if err := domain.ValidatePassword(*input.Password, s.minPasswordLength); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	return s.repo.Update(ctx, id, patch)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ensureEmailFree fails when email belongs to a user other than self.
func (s *UserService) ensureEmailFree(ctx context.Context, email string, self int64) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == self:
		return nil
	}
	return fmt.Errorf("%w: email already registered", domain.ErrAlreadyExists)
}

var _ UserUseCase = (*UserService)(nil)
