package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// Identity represents the authenticated caller.
type Identity struct {
	ID       uuid.UUID
	Username string
	Role     domain.Role
	Status   domain.UserStatus
}

// IdentityFromUser projects a stored user onto an Identity.
func IdentityFromUser(u *domain.User) Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role, Status: u.Status}
}

// UserLookup resolves token subjects to stored users.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Middleware validates bearer tokens and loads identities.
type Middleware struct {
	tokens *TokenManager
	users  UserLookup
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users UserLookup) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	raw, err := BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	claims, err := m.tokens.Parse(raw)
	if err != nil {
		return err
	}

	user, err := m.users.GetByUsername(c.UserContext(), claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewUnauthorized("unauthorized")
		}
		return apperrors.NewDatabaseError(err)
	}

	identity := IdentityFromUser(user)
	c.Locals(identityKey, &identity)
	return c.Next()
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewAuthError("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewAuthError("invalid authorization header")
	}
	return parts[1], nil
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	identity, ok := c.Locals(identityKey).(*Identity)
	return identity, ok && identity != nil
}
