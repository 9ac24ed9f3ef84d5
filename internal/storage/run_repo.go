package storage

import (
	"context"
	"fmt"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/models"
)

// RunRepo journals run state. Everything here is best effort from the
// caller's point of view: a run must not fail because the journal is
// unreachable.
type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) UpsertRun(ctx context.Context, rec models.RunRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO runs (run_id, organization, output_format, start_page, end_page, document_count, status, message)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8,''))
ON CONFLICT (run_id)
DO UPDATE SET
  organization = EXCLUDED.organization,
  output_format = EXCLUDED.output_format,
  start_page = EXCLUDED.start_page,
  end_page = EXCLUDED.end_page,
  document_count = EXCLUDED.document_count,
  status = EXCLUDED.status,
  message = EXCLUDED.message,
  updated_at = NOW()`,
		rec.RunID, rec.Organization, rec.OutputFormat, rec.StartPage, rec.EndPage, rec.DocumentCount, rec.Status, rec.Message,
	)
	if err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}
	return nil
}

func (r *RunRepo) UpdateRunStatus(ctx context.Context, runID, status, message string) error {
	_, err := r.db.Pool.Exec(ctx, `
UPDATE runs SET status=$2, message=COALESCE(NULLIF($3,''), message), updated_at=NOW() WHERE run_id=$1`,
		runID, status, message)
	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	return nil
}

func (r *RunRepo) SetCreditsCharged(ctx context.Context, runID string, credits int) error {
	_, err := r.db.Pool.Exec(ctx, `
UPDATE runs SET credits_charged=$2, updated_at=NOW() WHERE run_id=$1`, runID, credits)
	if err != nil {
		return fmt.Errorf("set credits charged: %w", err)
	}
	return nil
}

func (r *RunRepo) CompleteRun(ctx context.Context, runID string, pages, tables, files int, archiveSHA256 string) error {
	_, err := r.db.Pool.Exec(ctx, `
UPDATE runs SET status='completed', pages_analyzed=$2, tables_found=$3, files_written=$4,
       archive_sha256=NULLIF($5,''), updated_at=NOW()
WHERE run_id=$1`,
		runID, pages, tables, files, archiveSHA256)
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	return nil
}
