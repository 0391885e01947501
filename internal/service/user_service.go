package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/pkg/patch"
)

// UserService manages user accounts on behalf of privileged callers.
type UserService struct {
	users      repository.UserRepository
	checks     *Checks
	bcryptCost int
}

// CreateUserInput describes an account to create. Empty Role and Status
// default to USER and ACTIVE.
type CreateUserInput struct {
	Username  string
	Email     *string
	Password  string
	FirstName *string
	LastName  *string
	Role      domain.Role
	Status    domain.UserStatus
}

// UpdateUserInput is a partial update; Password is plaintext.
type UpdateUserInput struct {
	Username  patch.Field[string]
	Email     patch.Field[string]
	Password  patch.Field[string]
	FirstName patch.Field[string]
	LastName  patch.Field[string]
	Role      patch.Field[domain.Role]
	Status    patch.Field[domain.UserStatus]
}

// NewUserService constructs the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository, checks *Checks) *UserService {
	return &UserService{users: users, checks: checks, bcryptCost: cfg.BcryptCost}
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	n, err := s.users.Count(ctx)
	return n, storageError(err, "user")
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	return users, storageError(err, "user")
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	return user, storageError(err, "user")
}

// Create adds an account after checking the username is free.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (uuid.UUID, error) {
	return createUser(ctx, s.users, s.checks, s.bcryptCost, input)
}

// Update applies a partial update and returns the user id.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (uuid.UUID, error) {
	if err := s.checks.Exists(ctx, KindUser, id); err != nil {
		return uuid.Nil, err
	}

	if username, ok := input.Username.Get(); ok {
		other, err := s.users.GetByUsername(ctx, username)
		switch {
		case err == nil && other.ID != id:
			return uuid.Nil, usernameTaken(username)
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return uuid.Nil, storageError(err, "user")
		}
	}

	p := domain.UserPatch{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		Status:    input.Status,
	}
	if password, ok := input.Password.Get(); ok {
		hash, err := auth.HashPassword(password, s.bcryptCost)
		if err != nil {
			return uuid.Nil, err
		}
		p.PasswordHash = patch.Value(hash)
	}

	if err := s.users.Update(ctx, id, p); err != nil {
		return uuid.Nil, storageError(err, "user")
	}
	return id, nil
}

// Delete removes an existing user.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.checks.Exists(ctx, KindUser, id); err != nil {
		return err
	}
	return storageError(s.users.Delete(ctx, id), "user")
}

func createUser(ctx context.Context, users repository.UserRepository, checks *Checks, cost int, input CreateUserInput) (uuid.UUID, error) {
	if err := checks.IsUnique(ctx, input.Username); err != nil {
		return uuid.Nil, err
	}

	hash, err := auth.HashPassword(input.Password, cost)
	if err != nil {
		return uuid.Nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		Status:       input.Status,
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if user.Status == "" {
		user.Status = domain.UserStatusActive
	}

	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return uuid.Nil, usernameTaken(input.Username)
		}
		return uuid.Nil, storageError(err, "user")
	}
	return user.ID, nil
}
