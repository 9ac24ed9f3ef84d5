package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool
}

func NewDB(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func (d *DB) Close() {
	if d != nil && d.Pool != nil {
		d.Pool.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    organization BIGINT NOT NULL DEFAULT 0,
    output_format TEXT NOT NULL DEFAULT 'csv',
    start_page INT NOT NULL DEFAULT 1,
    end_page INT NOT NULL DEFAULT 1,
    document_count INT NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'pending',
    message TEXT,
    credits_charged INT NOT NULL DEFAULT 0,
    pages_analyzed INT NOT NULL DEFAULT 0,
    tables_found INT NOT NULL DEFAULT 0,
    files_written INT NOT NULL DEFAULT 0,
    archive_sha256 TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS analysis_calls (
    call_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    run_id TEXT NOT NULL,
    document_id BIGINT NOT NULL,
    page INT NOT NULL,
    provider TEXT NOT NULL,
    table_count INT NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    error_type TEXT,
    latency_ms BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS analysis_calls_run_idx ON analysis_calls (run_id, document_id, page);
`

// EnsureSchema creates the journal tables on first connect. Idempotent,
// so every worker can run it at startup.
func (d *DB) EnsureSchema(ctx context.Context) error {
	if _, err := d.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
