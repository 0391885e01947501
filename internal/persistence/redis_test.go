package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/testutil"
)

func TestDisabledRedis(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, zap.NewNop())
	assert.False(t, r.Enabled())
	assert.ErrorIs(t, r.Ping(context.Background()), ErrRedisDisabled)
	r.Close()
}

func TestRedisStorage(t *testing.T) {
	addr := testutil.StartRedis(t)
	r := NewRedis(config.RedisConfig{Addr: addr}, zap.NewNop())
	t.Cleanup(r.Close)
	require.NoError(t, r.Ping(context.Background()))

	store := r.Storage("limiter:")

	val, err := store.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set("10.0.0.1", []byte("3"), time.Minute))
	require.NoError(t, store.Set("10.0.0.2", []byte("1"), time.Minute))

	val, err = store.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)

	require.NoError(t, store.Delete("10.0.0.1"))
	val, err = store.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, r.Client.Set(context.Background(), "other:key", "keep", 0).Err())
	require.NoError(t, store.Reset())
	val, err = store.Get("10.0.0.2")
	require.NoError(t, err)
	assert.Nil(t, val)

	kept, err := r.Client.Get(context.Background(), "other:key").Result()
	require.NoError(t, err)
	assert.Equal(t, "keep", kept)
	assert.NoError(t, store.Close())
}
