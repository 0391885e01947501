package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/persistence"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

type fakeDatabase struct {
	status persistence.DatabaseStatus
	err    error
}

func (f fakeDatabase) Status(context.Context) (persistence.DatabaseStatus, error) {
	return f.status, f.err
}

type fakeCache struct {
	enabled bool
	err     error
}

func (f fakeCache) Enabled() bool { return f.enabled }
func (f fakeCache) Ping(context.Context) error { return f.err }

type fakeMigrator struct {
	pending []string
	applied []string
	err     error
}

func (f *fakeMigrator) Pending(context.Context) ([]string, error) { return f.pending, f.err }

func (f *fakeMigrator) Apply(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.applied, f.pending = f.pending, nil
	return f.applied, nil
}

func TestStatus(t *testing.T) {
	metrics := observability.NewMetrics()
	metrics.RecordRequest("/api/v1/tickets", "GET", 200)

	svc := NewSystemService(SystemDependencies{
		Database: fakeDatabase{status: persistence.DatabaseStatus{Version: "16.2", MaxConnections: 100, OpenedConnections: 3}},
		Redis:    fakeCache{enabled: true, err: errors.New("dial tcp: refused")},
		Metrics:  metrics,
		Version:  "1.2.0",
	})

	report, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", report.Version)
	assert.Equal(t, "16.2", report.Dependencies.Database.Version)
	assert.Equal(t, 3, report.Dependencies.Database.OpenedConnections)
	assert.Equal(t, "unreachable", report.Dependencies.Redis)
	assert.Len(t, report.HTTP.Requests, 1)
}

func TestStatusDatabaseDown(t *testing.T) {
	svc := NewSystemService(SystemDependencies{Database: fakeDatabase{err: errors.New("no route")}})
	_, err := svc.Status(context.Background())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDatabase))
}

func TestMigrations(t *testing.T) {
	migrator := &fakeMigrator{pending: []string{"0001_create_users", "0002_create_tickets"}}
	svc := NewSystemService(SystemDependencies{Migrator: migrator})

	pending, err := svc.PendingMigrations(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	applied, err := svc.ApplyMigrations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pending, applied)

	pending, err = svc.PendingMigrations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}
