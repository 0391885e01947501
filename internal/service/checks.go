package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// Kind names an entity probed by Checks.
type Kind string

const (
	KindUser   Kind = "user"
	KindTicket Kind = "ticket"
)

// Checks runs the existence and uniqueness probes that precede mutations.
// The probes take no locks; a row can change between a probe and the write
// that follows it.
type Checks struct {
	users   repository.UserRepository
	tickets repository.TicketRepository
}

// NewChecks constructs the probes.
func NewChecks(users repository.UserRepository, tickets repository.TicketRepository) *Checks {
	return &Checks{users: users, tickets: tickets}
}

// Exists fails with NotFound when no row of kind matches id.
func (c *Checks) Exists(ctx context.Context, kind Kind, id uuid.UUID) error {
	var (
		found bool
		err   error
	)
	switch kind {
	case KindUser:
		found, err = c.users.Exists(ctx, id)
	case KindTicket:
		found, err = c.tickets.Exists(ctx, id)
	default:
		return apperrors.NewInternalError(nil)
	}
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if !found {
		return apperrors.NewNotFound(string(kind), map[string]any{"id": id.String()})
	}
	return nil
}

// IsUnique fails with AlreadyExists when username is taken.
func (c *Checks) IsUnique(ctx context.Context, username string) error {
	taken, err := c.users.UsernameTaken(ctx, username)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if taken {
		return usernameTaken(username)
	}
	return nil
}

func usernameTaken(username string) error {
	return apperrors.NewAlreadyExists("username already taken", map[string]any{"username": username})
}

// storageError translates repository sentinels for resource.
func storageError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, repository.ErrNotModified):
		return apperrors.NewNotModified()
	case errors.Is(err, repository.ErrAlreadyExists):
		return apperrors.NewAlreadyExists(resource+" already exists", nil)
	default:
		return apperrors.NewDatabaseError(err)
	}
}
