package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema holds the DDL for the job store. The document-per-row layout keeps
// the orchestrator as the single writer; readers only ever select.
const Schema = `
CREATE TABLE IF NOT EXISTS try_on_jobs (
    id               UUID PRIMARY KEY,
    user_id          TEXT NOT NULL,
    input_image_url  TEXT NOT NULL,
    outfit_image_url TEXT NOT NULL,
    metrics          JSONB,
    status           TEXT NOT NULL DEFAULT 'queued',
    result_url       TEXT,
    fit_score        DOUBLE PRECISION,
    notes            TEXT,
    error_message    TEXT,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_try_on_jobs_user ON try_on_jobs (user_id, created_at DESC);
`

// Bootstrap applies the schema. Safe to run on every startup.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("db: apply schema: %w", err)
	}
	return nil
}
