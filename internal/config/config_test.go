package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/desk")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "postgres://u:p@db:5432/desk", cfg.Postgres.DSN)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.HTTP.AllowOrigins)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadParsesLists(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("LOG_OUTPUT_PATHS", "stdout,/var/log/desk.log")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, []string{"stdout", "/var/log/desk.log"}, cfg.Logger.OutputPaths)
}

func TestLoadRejectsBadAuthConfig(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		ttl    string
	}{
		{name: "missing secret", secret: "", ttl: "60"},
		{name: "malformed ttl", secret: "s3cret", ttl: "an hour"},
		{name: "zero ttl", secret: "s3cret", ttl: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTH_JWT_SECRET", tt.secret)
			t.Setenv("AUTH_TOKEN_TTL_SECONDS", tt.ttl)

			_, err := Load()
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeConfig))
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{}.RequestTimeout())
	assert.Equal(t, 5*time.Second, AppConfig{RequestTimeoutSeconds: 5}.RequestTimeout())
}
