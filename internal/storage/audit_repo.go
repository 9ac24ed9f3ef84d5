package storage

import (
	"context"
	"fmt"
)

type AnalysisCallRecord struct {
	CallID     string
	RunID      string
	DocumentID int64
	Page       int
	Provider   string
	TableCount int
	Status     string
	ErrorType  string
	LatencyMS  int64
}

// AuditRepo records every analysis service call, success or failure,
// one row per submitted page image.
type AuditRepo struct {
	db *DB
}

func NewAuditRepo(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Insert(ctx context.Context, rec AnalysisCallRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO analysis_calls(call_id, run_id, document_id, page, provider, table_count, status, error_type, latency_ms)
VALUES (COALESCE(NULLIF($1,'')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, NULLIF($8,''), $9)`,
		rec.CallID, rec.RunID, rec.DocumentID, rec.Page, rec.Provider, rec.TableCount, rec.Status, rec.ErrorType, rec.LatencyMS)
	if err != nil {
		return fmt.Errorf("insert analysis call: %w", err)
	}
	return nil
}
