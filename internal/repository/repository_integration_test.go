package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/persistence"
	"github.com/spec-kit/support-desk/internal/testutil"
	"github.com/spec-kit/support-desk/migrations"
	"github.com/spec-kit/support-desk/pkg/patch"
)

func setupRepositories(t *testing.T) (UserRepository, TicketRepository) {
	t.Helper()
	pool := testutil.StartPostgres(t)
	_, err := persistence.NewMigrator(pool, migrations.FS, zap.NewNop()).Apply(context.Background())
	require.NoError(t, err)
	return NewUserRepository(pool), NewTicketRepository(pool)
}

func TestRepositoriesAgainstPostgres(t *testing.T) {
	users, tickets := setupRepositories(t)
	ctx := context.Background()

	email := "alice@example.com"
	alice := &domain.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        &email,
		PasswordHash: "hash",
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
	}
	require.NoError(t, users.Create(ctx, alice))

	dup := *alice
	dup.ID = uuid.New()
	assert.ErrorIs(t, users.Create(ctx, &dup), ErrAlreadyExists)

	taken, err := users.UsernameTaken(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, taken)

	stored, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, stored.ID)
	assert.Equal(t, domain.RoleUser, stored.Role)
	assert.Equal(t, &email, stored.Email)

	_, err = users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	ticket := &domain.Ticket{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       "Printer broken",
		Description: "The printer on floor 2 jams on every print job",
		RequesterID: alice.ID,
		Status:      domain.TicketStatusOpen,
	}
	require.NoError(t, tickets.Create(ctx, ticket))

	got, err := tickets.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Requester.Username)
	assert.Equal(t, domain.TicketStatusOpen, got.Status)
	assert.Nil(t, got.ClosedAt)
	assert.Nil(t, got.ClosedBy)

	t.Run("empty patch is not modified", func(t *testing.T) {
		_, err := tickets.Update(ctx, ticket.ID, domain.TicketPatch{})
		assert.ErrorIs(t, err, ErrNotModified)
		after, err := tickets.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, got.UpdatedAt, after.UpdatedAt)
	})

	t.Run("closing stamps closed_at and title edit keeps it", func(t *testing.T) {
		prev, err := tickets.Update(ctx, ticket.ID, domain.TicketPatch{
			Status:   patch.Value(domain.TicketStatusClosed),
			ClosedBy: patch.Value(alice.ID),
			Solution: patch.Value("Replaced the fuser unit"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusOpen, prev)

		closed, err := tickets.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusClosed, closed.Status)
		require.NotNil(t, closed.ClosedAt)
		require.NotNil(t, closed.ClosedBy)
		assert.Equal(t, "alice", closed.ClosedBy.Username)

		time.Sleep(10 * time.Millisecond)
		_, err = tickets.Update(ctx, ticket.ID, domain.TicketPatch{Title: patch.Value("Printer fixed")})
		require.NoError(t, err)

		edited, err := tickets.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, "Printer fixed", edited.Title)
		require.NotNil(t, edited.ClosedAt)
		assert.True(t, closed.ClosedAt.Equal(*edited.ClosedAt))
		assert.True(t, edited.UpdatedAt.After(closed.UpdatedAt))
	})

	t.Run("update of missing ticket", func(t *testing.T) {
		_, err := tickets.Update(ctx, uuid.New(), domain.TicketPatch{Title: patch.Value("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("user patch", func(t *testing.T) {
		require.NoError(t, users.Update(ctx, alice.ID, domain.UserPatch{
			Email: patch.Null[string](),
			Role:  patch.Value(domain.RoleModerator),
		}))
		u, err := users.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Nil(t, u.Email)
		assert.Equal(t, domain.RoleModerator, u.Role)
		assert.ErrorIs(t, users.Update(ctx, alice.ID, domain.UserPatch{}), ErrNotModified)
	})

	list, err := tickets.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, tickets.Delete(ctx, ticket.ID))
	exists, err := tickets.Exists(ctx, ticket.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, tickets.Delete(ctx, ticket.ID))

	count, err := tickets.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
