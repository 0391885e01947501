package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/pkg/patch"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

var testAuthConfig = config.AuthConfig{
	JWTSecret:       "0123456789abcdef0123456789abcdef",
	TokenTTLSeconds: 3600,
	BcryptCost:      bcrypt.MinCost,
}

func newUserService(t *testing.T) (*UserService, *repository.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := repository.NewMockUserRepository(ctrl)
	tickets := repository.NewMockTicketRepository(ctrl)
	return NewUserService(testAuthConfig, users, NewChecks(users, tickets)), users
}

func TestCreateUser(t *testing.T) {
	t.Run("defaults role and status", func(t *testing.T) {
		svc, users := newUserService(t)
		users.EXPECT().UsernameTaken(gomock.Any(), "carol").Return(false, nil)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) error {
			assert.Equal(t, domain.RoleUser, u.Role)
			assert.Equal(t, domain.UserStatusActive, u.Status)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse")))
			return nil
		})

		id, err := svc.Create(context.Background(), CreateUserInput{Username: "carol", Password: "correct horse"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc, users := newUserService(t)
		users.EXPECT().UsernameTaken(gomock.Any(), "carol").Return(true, nil)

		_, err := svc.Create(context.Background(), CreateUserInput{Username: "carol", Password: "correct horse"})
		assert.True(t, apperrors.HasCode(err, apperrors.CodeAlreadyExists))
	})

	t.Run("lost race on insert", func(t *testing.T) {
		svc, users := newUserService(t)
		users.EXPECT().UsernameTaken(gomock.Any(), "carol").Return(false, nil)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrAlreadyExists)

		_, err := svc.Create(context.Background(), CreateUserInput{Username: "carol", Password: "correct horse"})
		assert.True(t, apperrors.HasCode(err, apperrors.CodeAlreadyExists))
	})
}

func TestUpdateUser(t *testing.T) {
	id := uuid.New()

	t.Run("missing user", func(t *testing.T) {
		svc, users := newUserService(t)
		users.EXPECT().Exists(gomock.Any(), id).Return(false, nil)

		_, err := svc.Update(context.Background(), id, UpdateUserInput{FirstName: patch.Value("Dan")})
		assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	})

	t.Run("username owned by someone else", func(t *testing.T) {
		svc, users := newUserService(t)
		users.EXPECT().Exists(gomock.Any(), id).Return(true, nil)
		users.EXPECT().GetByUsername(gomock.Any(), "erin").Return(&domain.User{ID: uuid.New(), Username: "erin"}, nil)

		_, err := svc.Update(context.Background(), id, UpdateUserInput{Username: patch.Value("erin")})
		assert.True(t, apperrors.HasCode(err, apperrors.CodeAlreadyExists))
	})

	t.Run("keeping own username", func(t *testing.T) {
		svc, users := newUserService(t)
		users.EXPECT().Exists(gomock.Any(), id).Return(true, nil)
		users.EXPECT().GetByUsername(gomock.Any(), "dan").Return(&domain.User{ID: id, Username: "dan"}, nil)
		users.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(nil)

		got, err := svc.Update(context.Background(), id, UpdateUserInput{Username: patch.Value("dan")})
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("password is hashed and email cleared", func(t *testing.T) {
		svc, users := newUserService(t)
		users.EXPECT().Exists(gomock.Any(), id).Return(true, nil)
		users.EXPECT().Update(gomock.Any(), id, gomock.Any()).DoAndReturn(func(_ context.Context, _ uuid.UUID, p domain.UserPatch) error {
			hash, ok := p.PasswordHash.Get()
			require.True(t, ok)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("new secret!")))
			assert.True(t, p.Email.IsNull())
			assert.False(t, p.Username.Set())
			return nil
		})

		_, err := svc.Update(context.Background(), id, UpdateUserInput{
			Password: patch.Value("new secret!"),
			Email:    patch.Null[string](),
		})
		require.NoError(t, err)
	})

	t.Run("nothing supplied", func(t *testing.T) {
		svc, users := newUserService(t)
		users.EXPECT().Exists(gomock.Any(), id).Return(true, nil)
		users.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(repository.ErrNotModified)

		_, err := svc.Update(context.Background(), id, UpdateUserInput{})
		assert.True(t, apperrors.HasCode(err, apperrors.CodeNotModified))
	})
}

func TestDeleteUser(t *testing.T) {
	id := uuid.New()

	svc, users := newUserService(t)
	users.EXPECT().Exists(gomock.Any(), id).Return(false, nil)
	err := svc.Delete(context.Background(), id)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	svc, users = newUserService(t)
	users.EXPECT().Exists(gomock.Any(), id).Return(true, nil)
	users.EXPECT().Delete(gomock.Any(), id).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), id))
}
