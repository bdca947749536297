package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations creates the tables used by the postgres storage backend and
// the export log. Every step is idempotent.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists the steps in the order they run.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_resume_storage", Up: exec(createResumeStorage)},
		{Name: "create_resume_exports", Up: exec(createResumeExports)},
		{Name: "index_resume_exports_created_at", Up: tolerant(indexResumeExports)},
	}
}

const createResumeStorage = `
	CREATE TABLE IF NOT EXISTS resume_storage (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const createResumeExports = `
	CREATE TABLE IF NOT EXISTS resume_exports (
		id         UUID PRIMARY KEY,
		kind       TEXT NOT NULL,
		title      TEXT NOT NULL,
		template   TEXT NOT NULL,
		file_name  TEXT NOT NULL,
		file_path  TEXT NOT NULL DEFAULT '',
		file_size  INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const indexResumeExports = `
	CREATE INDEX IF NOT EXISTS resume_exports_created_at_idx
	ON resume_exports (created_at DESC);
`

func exec(query string) func(context.Context, *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		_, err := pool.Exec(ctx, query)
		return err
	}
}

// tolerant logs failures instead of aborting; used for optional indexes.
func tolerant(query string) func(context.Context, *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		if _, err := pool.Exec(ctx, query); err != nil {
			slog.Warn("Optional migration step failed", "error", err)
		}
		return nil
	}
}
