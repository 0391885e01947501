package persistence

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/testutil"
	"github.com/spec-kit/support-desk/migrations"
)

func TestListMigrationsSortsSQLFiles(t *testing.T) {
	files := fstest.MapFS{
		"0002_b.sql":   {Data: []byte("SELECT 2")},
		"0001_a.sql":   {Data: []byte("SELECT 1")},
		"README.md":    {Data: []byte("docs")},
		"nested/x.sql": {Data: []byte("SELECT 3")},
	}

	names, err := listMigrations(files)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql"}, names)
}

func TestPendingMigrations(t *testing.T) {
	all := []string{"0001_a.sql", "0002_b.sql", "0003_c.sql"}
	assert.Equal(t, all, pendingMigrations(all, nil))
	assert.Equal(t, []string{"0003_c.sql"}, pendingMigrations(all, map[string]bool{"0001_a.sql": true, "0002_b.sql": true}))
	assert.Empty(t, pendingMigrations(all, map[string]bool{"0001_a.sql": true, "0002_b.sql": true, "0003_c.sql": true}))
}

func TestMigratorAppliesOnce(t *testing.T) {
	pool := testutil.StartPostgres(t)
	ctx := context.Background()
	m := NewMigrator(pool, migrations.FS, zap.NewNop())

	pending, err := m.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_create_users.sql", "0002_create_tickets.sql"}, pending)

	applied, err := m.Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, pending, applied)

	applied, err = m.Apply(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)

	pg := &Postgres{Pool: pool}
	status, err := pg.Status(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, status.Version)
	assert.Positive(t, status.MaxConnections)
	assert.GreaterOrEqual(t, status.OpenedConnections, 1)
	assert.NoError(t, pg.Ping(ctx))
}

func TestNilPostgres(t *testing.T) {
	var pg *Postgres
	assert.ErrorIs(t, pg.Ping(context.Background()), ErrNoDatabase)
	_, err := pg.Status(context.Background())
	assert.ErrorIs(t, err, ErrNoDatabase)
}
