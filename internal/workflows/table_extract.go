package workflows

import (
	"fmt"
	"strings"
	"time"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/activities"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/billing"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/models"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const QueryGetRunProgress = "GetRunProgress"

// Messages shown to the user when a run stops before processing.
const (
	msgNoDocuments         = "It looks like no documents were selected. Search for some or select them and run again."
	msgNoOrganization      = "No organization to charge."
	msgInsufficientCredits = "You do not have sufficient AI credits to run this Add-On on this document set"
	msgEndBeforeStart      = "The end page you provided is smaller than the start page, try again"
	msgStartBelowOne       = "Your start page is less than 1, please try again"
)

func TableExtractWorkflow(ctx workflow.Context, input RunInput) (RunResult, error) {
	progress := RunProgress{RunID: input.RunID, State: "validating"}
	if err := workflow.SetQueryHandler(ctx, QueryGetRunProgress, func() (RunProgress, error) {
		return progress, nil
	}); err != nil {
		return RunResult{}, err
	}

	// Every activity runs at most once. A failed page is not
	// resubmitted and its charge is not returned.
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	format := normalizeFormat(input.OutputFormat)
	pages := models.PageRange{Start: input.StartPage, End: input.EndPage}

	_ = workflow.ExecuteActivity(ctx, "UpsertRunActivity", activities.UpsertRunInput{Record: models.RunRecord{
		RunID:         input.RunID,
		Organization:  input.Organization,
		OutputFormat:  format,
		StartPage:     pages.Start,
		EndPage:       pages.End,
		DocumentCount: len(input.DocumentIDs),
		Status:        "running",
	}}).Get(ctx, nil)

	if len(input.DocumentIDs) == 0 {
		return abortRun(ctx, &progress, input.RunID, msgNoDocuments)
	}
	if input.Organization == 0 {
		return abortRun(ctx, &progress, input.RunID, msgNoOrganization)
	}

	progress.State = "resolving_documents"
	var docsOut activities.ListDocumentsOutput
	if err := workflow.ExecuteActivity(ctx, "ListDocumentsActivity", activities.ListDocumentsInput{DocumentIDs: input.DocumentIDs}).Get(ctx, &docsOut); err != nil {
		return failRun(ctx, &progress, input.RunID, err)
	}
	docs := docsOut.Documents
	progress.DocumentsTotal = len(docs)

	progress.State = "charging"
	cost := billing.EstimateCost(docs, pages)
	if err := workflow.ExecuteActivity(ctx, "ChargeCreditsActivity", activities.ChargeCreditsInput{
		Organization: input.Organization,
		Amount:       cost,
		Note:         fmt.Sprintf("AddOn run %s", input.RunID),
	}).Get(ctx, nil); err != nil {
		return abortRun(ctx, &progress, input.RunID, msgInsufficientCredits)
	}
	_ = workflow.ExecuteActivity(ctx, "RecordChargeActivity", activities.RecordChargeInput{RunID: input.RunID, Credits: cost}).Get(ctx, nil)

	// The charge lands before the range is inspected.
	if pages.End < pages.Start {
		return abortRun(ctx, &progress, input.RunID, msgEndBeforeStart)
	}
	if pages.Start < 1 {
		return abortRun(ctx, &progress, input.RunID, msgStartBelowOne)
	}

	result := RunResult{Status: "completed", CreditsCharged: cost}
	progress.State = "processing"
	progress.PagesExpected = billing.EffectivePages(docs, pages)
	docSummaries := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		progress.CurrentDocument = doc.ID
		docFiles := []string{}
		docPages := 0
		last := pages.LastPage(doc.PageCount)
		for page := pages.Start; page <= last; page++ {
			progress.CurrentPage = page

			var rendered activities.RenderPageOutput
			if err := workflow.ExecuteActivity(ctx, "RenderPageActivity", activities.RenderPageInput{RunID: input.RunID, Document: doc, Page: page}).Get(ctx, &rendered); err != nil {
				return failRun(ctx, &progress, input.RunID, err)
			}

			var analyzed activities.AnalyzeTablesOutput
			if err := workflow.ExecuteActivity(ctx, "AnalyzeTablesActivity", activities.AnalyzeTablesInput{RunID: input.RunID, DocumentID: doc.ID, Page: page, ImagePath: rendered.ImagePath}).Get(ctx, &analyzed); err != nil {
				return failRun(ctx, &progress, input.RunID, err)
			}

			var emitted activities.EmitTablesOutput
			if err := workflow.ExecuteActivity(ctx, "EmitTablesActivity", activities.EmitTablesInput{RunID: input.RunID, DocumentID: doc.ID, Page: page, OutputFormat: format, Tables: analyzed.Tables}).Get(ctx, &emitted); err != nil {
				return failRun(ctx, &progress, input.RunID, err)
			}

			docPages++
			result.PagesAnalyzed++
			result.TablesFound += len(analyzed.Tables)
			result.FilesWritten += len(emitted.Files)
			docFiles = append(docFiles, emitted.Files...)
			progress.PagesAnalyzed = result.PagesAnalyzed
			progress.TablesFound = result.TablesFound
			progress.FilesWritten = result.FilesWritten
		}
		progress.DocumentsDone++
		docSummaries = append(docSummaries, map[string]any{
			"id":             doc.ID,
			"title":          doc.Title,
			"pages_analyzed": docPages,
			"files":          docFiles,
		})
	}
	progress.CurrentDocument = 0
	progress.CurrentPage = 0

	progress.State = "archiving"
	var archived activities.ArchiveOutputsOutput
	if err := workflow.ExecuteActivity(ctx, "ArchiveOutputsActivity", activities.ArchiveOutputsInput{RunID: input.RunID}).Get(ctx, &archived); err != nil {
		return failRun(ctx, &progress, input.RunID, err)
	}
	result.ArchiveSHA256 = archived.SHA256

	progress.State = "delivering"
	if err := workflow.ExecuteActivity(ctx, "DeliverArchiveActivity", activities.DeliverArchiveInput{RunUUID: input.RunID, ArchivePath: archived.ArchivePath}).Get(ctx, nil); err != nil {
		return failRun(ctx, &progress, input.RunID, err)
	}

	doneMsg := fmt.Sprintf("Extracted %d tables from %d pages across %d documents.", result.TablesFound, result.PagesAnalyzed, len(docs))
	_ = workflow.ExecuteActivity(ctx, "SetRunMessageActivity", activities.SetRunMessageInput{RunUUID: input.RunID, Message: doneMsg}).Get(ctx, nil)

	_ = workflow.ExecuteActivity(ctx, "WriteRunManifestActivity", activities.WriteRunManifestInput{
		RunID: input.RunID,
		Manifest: map[string]any{
			"run_id":          input.RunID,
			"organization":    input.Organization,
			"output_format":   format,
			"start_page":      pages.Start,
			"end_page":        pages.End,
			"credits_charged": cost,
			"documents":       docSummaries,
			"pages_analyzed":  result.PagesAnalyzed,
			"tables_found":    result.TablesFound,
			"files_written":   result.FilesWritten,
			"archive_entries": archived.FileCount,
			"archive_sha256":  archived.SHA256,
			"generated_at":    workflow.Now(ctx),
		},
	}).Get(ctx, nil)

	_ = workflow.ExecuteActivity(ctx, "CompleteRunActivity", activities.CompleteRunInput{
		RunID:         input.RunID,
		PagesAnalyzed: result.PagesAnalyzed,
		TablesFound:   result.TablesFound,
		FilesWritten:  result.FilesWritten,
		ArchiveSHA256: archived.SHA256,
	}).Get(ctx, nil)
	_ = workflow.ExecuteActivity(ctx, "CleanupRunDirActivity", activities.CleanupRunDirInput{RunID: input.RunID}).Get(ctx, nil)

	progress.State = "done"
	progress.Message = doneMsg
	result.Message = doneMsg
	return result, nil
}

func abortRun(ctx workflow.Context, progress *RunProgress, runID, message string) (RunResult, error) {
	progress.State = "aborted"
	progress.Message = message
	_ = workflow.ExecuteActivity(ctx, "SetRunMessageActivity", activities.SetRunMessageInput{RunUUID: runID, Message: message}).Get(ctx, nil)
	_ = workflow.ExecuteActivity(ctx, "UpdateRunStatusActivity", activities.UpdateRunStatusInput{RunID: runID, Status: "aborted", Message: message}).Get(ctx, nil)
	return RunResult{Status: "aborted", Message: message}, nil
}

func failRun(ctx workflow.Context, progress *RunProgress, runID string, err error) (RunResult, error) {
	progress.State = "failed"
	progress.Message = err.Error()
	_ = workflow.ExecuteActivity(ctx, "UpdateRunStatusActivity", activities.UpdateRunStatusInput{RunID: runID, Status: "failed", Message: err.Error()}).Get(ctx, nil)
	return RunResult{}, err
}

func normalizeFormat(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "csv"
	}
	return v
}
