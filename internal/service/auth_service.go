package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// AuthService issues tokens and registers users.
type AuthService struct {
	users      repository.UserRepository
	checks     *Checks
	tokens     *auth.TokenManager
	bcryptCost int
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Checks   *Checks
	Tokens   *auth.TokenManager
}

// RegisterInput is a self-service sign-up.
type RegisterInput struct {
	Username  string
	Email     *string
	Password  string
	FirstName *string
	LastName  *string
}

// LoginResult carries an issued access token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// NewAuthService wires the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		checks:     deps.Checks,
		tokens:     deps.Tokens,
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Register creates an active USER account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (uuid.UUID, error) {
	return createUser(ctx, s.users, s.checks, s.bcryptCost, CreateUserInput{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      domain.RoleUser,
		Status:    domain.UserStatusActive,
	})
}

// Login checks credentials and issues a token carrying the user's role.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, err
	}
	if !user.Active() {
		return nil, apperrors.NewUnauthorized("unauthorized")
	}

	token, expiresAt, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

// Verify validates a token and returns its claims.
func (s *AuthService) Verify(token string) (*auth.Claims, error) {
	return s.tokens.Parse(token)
}
