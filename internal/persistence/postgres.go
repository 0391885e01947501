package persistence

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/config"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// Postgres wraps access to a pgx connection pool.
type Postgres struct {
	Pool *pgxpool.Pool
}

// ErrNoDatabase is returned when no connection pool is configured.
var ErrNoDatabase = errors.New("postgres pool not configured")

// NewPostgres establishes the connection pool.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, apperrors.NewConfigError("POSTGRES_DSN", errors.New("POSTGRES_DSN or DATABASE_URL must be set"))
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres")
	return &Postgres{Pool: pool}, nil
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

// PoolHandle returns the underlying pgx pool.
func (p *Postgres) PoolHandle() *pgxpool.Pool {
	if p == nil {
		return nil
	}
	return p.Pool
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return ErrNoDatabase
	}
	return p.Pool.Ping(ctx)
}

// DatabaseStatus is the store snapshot reported by the status endpoint.
type DatabaseStatus struct {
	Version           string `json:"version"`
	MaxConnections    int    `json:"max_connections"`
	OpenedConnections int    `json:"opened_connections"`
}

// Status reads the server version and connection usage of the current database.
func (p *Postgres) Status(ctx context.Context) (DatabaseStatus, error) {
	var status DatabaseStatus
	if p == nil || p.Pool == nil {
		return status, ErrNoDatabase
	}

	if err := p.Pool.QueryRow(ctx, `SHOW server_version`).Scan(&status.Version); err != nil {
		return status, err
	}

	var maxConns string
	if err := p.Pool.QueryRow(ctx, `SHOW max_connections`).Scan(&maxConns); err != nil {
		return status, err
	}
	maxConnections, err := strconv.Atoi(maxConns)
	if err != nil {
		return status, err
	}
	status.MaxConnections = maxConnections

	const opened = `SELECT count(*)::int FROM pg_stat_activity WHERE datname = current_database()`
	if err := p.Pool.QueryRow(ctx, opened).Scan(&status.OpenedConnections); err != nil {
		return status, err
	}
	return status, nil
}
