package activities

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phuslu/log"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/analysis"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/config"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/output"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/platform"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/render"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/storage"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/util"
)

type Activities struct {
	cfg       config.Config
	store     platform.DocumentStore
	ledger    platform.CreditLedger
	reporter  platform.RunReporter
	analyzer  analysis.TableAnalyzer
	runRepo   *storage.RunRepo
	auditRepo *storage.AuditRepo
}

func New(cfg config.Config, db *storage.DB, client *platform.Client, analyzer analysis.TableAnalyzer) *Activities {
	return &Activities{
		cfg:       cfg,
		store:     client,
		ledger:    client,
		reporter:  client,
		analyzer:  analyzer,
		runRepo:   storage.NewRunRepo(db),
		auditRepo: storage.NewAuditRepo(db),
	}
}

// Each run works under <work root>/<run id> so concurrent runs on one
// worker never touch each other's files.
func (a *Activities) runDir(runID string) string { return filepath.Join(a.cfg.WorkRoot, runID) }

func (a *Activities) pagesDir(runID string) string { return filepath.Join(a.runDir(runID), "pages") }

func (a *Activities) tablesDir(runID string) string { return filepath.Join(a.runDir(runID), "tables") }

func (a *Activities) submittedDir(runID string) string {
	return filepath.Join(a.runDir(runID), "submitted")
}

func (a *Activities) ListDocumentsActivity(ctx context.Context, in ListDocumentsInput) (ListDocumentsOutput, error) {
	docs, err := a.store.GetDocuments(ctx, in.DocumentIDs)
	if err != nil {
		return ListDocumentsOutput{}, err
	}
	return ListDocumentsOutput{Documents: docs}, nil
}

func (a *Activities) ChargeCreditsActivity(ctx context.Context, in ChargeCreditsInput) error {
	return a.ledger.ChargeCredits(ctx, in.Organization, in.Amount, in.Note)
}

func (a *Activities) SetRunMessageActivity(ctx context.Context, in SetRunMessageInput) error {
	return a.reporter.SetMessage(ctx, in.RunUUID, in.Message)
}

func (a *Activities) RenderPageActivity(ctx context.Context, in RenderPageInput) (RenderPageOutput, error) {
	raster, err := a.store.GetPageImage(ctx, in.Document, in.Page)
	if err != nil {
		return RenderPageOutput{}, err
	}
	gifPath, err := render.SavePageImage(a.pagesDir(in.RunID), in.Document.ID, in.Page, raster)
	if err != nil {
		return RenderPageOutput{}, err
	}
	pngPath, err := render.ConvertToPNG(gifPath)
	if err != nil {
		return RenderPageOutput{}, err
	}
	log.Debug().Int64("document", in.Document.ID).Int("page", in.Page).Msg("page rendered")
	return RenderPageOutput{ImagePath: pngPath}, nil
}

func (a *Activities) AnalyzeTablesActivity(ctx context.Context, in AnalyzeTablesInput) (AnalyzeTablesOutput, error) {
	image, err := os.ReadFile(in.ImagePath)
	if err != nil {
		return AnalyzeTablesOutput{}, fmt.Errorf("read page image: %w", err)
	}
	keep := filepath.Join(a.submittedDir(in.RunID), filepath.Base(in.ImagePath))
	start := time.Now()
	tables, err := a.analyzer.AnalyzeTables(ctx, image, analysis.AnalyzeOptions{SaveImagePath: keep})
	a.auditCall(ctx, in, len(tables), time.Since(start), err)
	if err != nil {
		return AnalyzeTablesOutput{}, err
	}
	log.Info().Int64("document", in.DocumentID).Int("page", in.Page).Int("tables", len(tables)).Msg("page analyzed")
	return AnalyzeTablesOutput{Tables: tables}, nil
}

// auditCall journals one analysis call, success or failure. The audit
// never fails the run.
func (a *Activities) auditCall(ctx context.Context, in AnalyzeTablesInput, tableCount int, elapsed time.Duration, callErr error) {
	if a.auditRepo == nil {
		return
	}
	rec := storage.AnalysisCallRecord{
		RunID:      in.RunID,
		DocumentID: in.DocumentID,
		Page:       in.Page,
		Provider:   a.analyzer.Name(),
		TableCount: tableCount,
		Status:     "ok",
		LatencyMS:  elapsed.Milliseconds(),
	}
	if callErr != nil {
		rec.Status = "error"
		rec.TableCount = 0
		rec.ErrorType = string(analysis.ClassifyError(callErr))
	}
	if err := a.auditRepo.Insert(ctx, rec); err != nil {
		log.Error().Err(err).Str("run", in.RunID).Msg("analysis audit insert failed")
	}
}

func (a *Activities) EmitTablesActivity(ctx context.Context, in EmitTablesInput) (EmitTablesOutput, error) {
	_ = ctx
	dir := a.tablesDir(in.RunID)
	files := make([]string, 0, len(in.Tables))
	for i, table := range in.Tables {
		var (
			path string
			err  error
		)
		if in.OutputFormat == "csv" {
			path, err = output.WriteCSV(dir, in.DocumentID, in.Page, i, table)
		} else {
			path, err = output.WriteXLSX(dir, in.DocumentID, in.Page, i, table)
		}
		if err != nil {
			return EmitTablesOutput{}, err
		}
		files = append(files, filepath.Base(path))
	}
	return EmitTablesOutput{Files: files}, nil
}

func (a *Activities) ArchiveOutputsActivity(ctx context.Context, in ArchiveOutputsInput) (ArchiveOutputsOutput, error) {
	_ = ctx
	tables := a.tablesDir(in.RunID)
	// A run that found no tables still delivers an empty archive.
	if err := util.EnsureDir(tables); err != nil {
		return ArchiveOutputsOutput{}, err
	}
	archivePath := filepath.Join(a.runDir(in.RunID), output.ArchiveName)
	n, err := output.BuildArchive(tables, archivePath)
	if err != nil {
		return ArchiveOutputsOutput{}, err
	}
	sum, err := util.SHA256HexFromFile(archivePath)
	if err != nil {
		return ArchiveOutputsOutput{}, err
	}
	return ArchiveOutputsOutput{ArchivePath: archivePath, FileCount: n, SHA256: sum}, nil
}

func (a *Activities) DeliverArchiveActivity(ctx context.Context, in DeliverArchiveInput) error {
	f, err := os.Open(in.ArchivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat archive: %w", err)
	}
	if err := a.reporter.UploadFile(ctx, in.RunUUID, output.ArchiveName, f, info.Size()); err != nil {
		return err
	}
	log.Info().Str("run", in.RunUUID).Int64("bytes", info.Size()).Msg("archive delivered")
	return nil
}

func (a *Activities) WriteRunManifestActivity(ctx context.Context, in WriteRunManifestInput) (WriteRunManifestOutput, error) {
	_ = ctx
	path := filepath.Join(a.runDir(in.RunID), "manifest.json")
	if err := util.WriteJSONAtomic(path, in.Manifest); err != nil {
		return WriteRunManifestOutput{}, err
	}
	return WriteRunManifestOutput{Path: path}, nil
}

func (a *Activities) UpsertRunActivity(ctx context.Context, in UpsertRunInput) error {
	return a.runRepo.UpsertRun(ctx, in.Record)
}

func (a *Activities) UpdateRunStatusActivity(ctx context.Context, in UpdateRunStatusInput) error {
	return a.runRepo.UpdateRunStatus(ctx, in.RunID, in.Status, in.Message)
}

func (a *Activities) RecordChargeActivity(ctx context.Context, in RecordChargeInput) error {
	return a.runRepo.SetCreditsCharged(ctx, in.RunID, in.Credits)
}

func (a *Activities) CompleteRunActivity(ctx context.Context, in CompleteRunInput) error {
	return a.runRepo.CompleteRun(ctx, in.RunID, in.PagesAnalyzed, in.TablesFound, in.FilesWritten, in.ArchiveSHA256)
}

// CleanupRunDirActivity removes the bulky intermediates once the
// archive is delivered. The manifest stays behind.
func (a *Activities) CleanupRunDirActivity(ctx context.Context, in CleanupRunDirInput) error {
	_ = ctx
	if a.cfg.KeepWorkDir {
		return nil
	}
	run := a.runDir(in.RunID)
	for _, name := range []string{"pages", "submitted", "tables", output.ArchiveName} {
		if err := os.RemoveAll(filepath.Join(run, name)); err != nil {
			return fmt.Errorf("cleanup %s: %w", name, err)
		}
	}
	return nil
}
