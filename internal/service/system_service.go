package service

import (
	"context"
	"time"

	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/persistence"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// DatabaseProbe reports store health.
type DatabaseProbe interface {
	Status(ctx context.Context) (persistence.DatabaseStatus, error)
}

// CacheProbe reports Redis health.
type CacheProbe interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// SchemaMigrator applies embedded schema migrations.
type SchemaMigrator interface {
	Pending(ctx context.Context) ([]string, error)
	Apply(ctx context.Context) ([]string, error)
}

// SystemService backs the status and migration endpoints.
type SystemService struct {
	db       DatabaseProbe
	redis    CacheProbe
	migrator SchemaMigrator
	metrics  *observability.Metrics
	version  string
}

// SystemDependencies bundles collaborators for the system service.
type SystemDependencies struct {
	Database DatabaseProbe
	Redis    CacheProbe
	Migrator SchemaMigrator
	Metrics  *observability.Metrics
	Version  string
}

// StatusReport is the body of GET /status.
type StatusReport struct {
	UpdatedAt    time.Time                     `json:"updated_at"`
	Version      string                        `json:"version"`
	Dependencies StatusDependencies            `json:"dependencies"`
	HTTP         observability.MetricsSnapshot `json:"http"`
}

// StatusDependencies groups the dependency snapshots.
type StatusDependencies struct {
	Database persistence.DatabaseStatus `json:"database"`
	Redis    string                     `json:"redis"`
}

// NewSystemService constructs the service.
func NewSystemService(deps SystemDependencies) *SystemService {
	return &SystemService{
		db:       deps.Database,
		redis:    deps.Redis,
		migrator: deps.Migrator,
		metrics:  deps.Metrics,
		version:  deps.Version,
	}
}

// Status snapshots the store and request counters.
func (s *SystemService) Status(ctx context.Context) (*StatusReport, error) {
	db, err := s.db.Status(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	redis := "disabled"
	if s.redis != nil && s.redis.Enabled() {
		redis = "ok"
		if err := s.redis.Ping(ctx); err != nil {
			redis = "unreachable"
		}
	}

	return &StatusReport{
		UpdatedAt:    time.Now().UTC(),
		Version:      s.version,
		Dependencies: StatusDependencies{Database: db, Redis: redis},
		HTTP:         s.metrics.Snapshot(),
	}, nil
}

// PendingMigrations lists migrations that Apply would run.
func (s *SystemService) PendingMigrations(ctx context.Context) ([]string, error) {
	pending, err := s.migrator.Pending(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return pending, nil
}

// ApplyMigrations runs pending migrations and returns the applied versions.
func (s *SystemService) ApplyMigrations(ctx context.Context) ([]string, error) {
	applied, err := s.migrator.Apply(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return applied, nil
}
