package persistence

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const createLedger = `
    CREATE TABLE IF NOT EXISTS schema_migrations (
        version    TEXT PRIMARY KEY,
        applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`

// Migrator applies SQL files from an fs.FS and records them in schema_migrations.
type Migrator struct {
	pool   *pgxpool.Pool
	files  fs.FS
	logger *zap.Logger
}

// NewMigrator builds a migrator over the .sql files at the root of files.
func NewMigrator(pool *pgxpool.Pool, files fs.FS, logger *zap.Logger) *Migrator {
	return &Migrator{pool: pool, files: files, logger: logger}
}

// Pending lists migrations not yet recorded as applied.
func (m *Migrator) Pending(ctx context.Context) ([]string, error) {
	all, err := listMigrations(m.files)
	if err != nil {
		return nil, err
	}
	if _, err := m.pool.Exec(ctx, createLedger); err != nil {
		return nil, fmt.Errorf("create migration ledger: %w", err)
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	return pendingMigrations(all, applied), nil
}

// Apply runs every pending migration, each in its own transaction, and
// returns the versions applied.
func (m *Migrator) Apply(ctx context.Context) ([]string, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return nil, err
	}

	for _, name := range pending {
		content, err := fs.ReadFile(m.files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}

		m.logger.Info("applying migration", zap.String("file", name))
		if err := pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(content)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name)
			return err
		}); err != nil {
			return nil, fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	m.logger.Info("migrations applied", zap.Int("count", len(pending)))
	return pending, nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := m.pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read migration ledger: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("read migration ledger: %w", err)
	}
	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func listMigrations(files fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(path.Ext(entry.Name()), ".sql") {
			continue
		}
		filenames = append(filenames, entry.Name())
	}
	sort.Strings(filenames)
	return filenames, nil
}

func pendingMigrations(all []string, applied map[string]bool) []string {
	pending := make([]string, 0, len(all))
	for _, name := range all {
		if !applied[name] {
			pending = append(pending, name)
		}
	}
	return pending
}
