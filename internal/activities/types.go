package activities

import "github.com/MuckRock/textract-table-extractor-add-on/internal/models"

type ListDocumentsInput struct {
	DocumentIDs []int64 `json:"document_ids"`
}

type ListDocumentsOutput struct {
	Documents []models.Document `json:"documents"`
}

type ChargeCreditsInput struct {
	Organization int64  `json:"organization"`
	Amount       int    `json:"amount"`
	Note         string `json:"note"`
}

type SetRunMessageInput struct {
	RunUUID string `json:"run_uuid"`
	Message string `json:"message"`
}

type RenderPageInput struct {
	RunID    string          `json:"run_id"`
	Document models.Document `json:"document"`
	Page     int             `json:"page"`
}

// RenderPageOutput carries the rendered page as a path under the run
// dir. Images never travel through workflow history as bytes.
type RenderPageOutput struct {
	ImagePath string `json:"image_path"`
}

type AnalyzeTablesInput struct {
	RunID      string `json:"run_id"`
	DocumentID int64  `json:"document_id"`
	Page       int    `json:"page"`
	ImagePath  string `json:"image_path"`
}

type AnalyzeTablesOutput struct {
	Tables []models.Table `json:"tables"`
}

type EmitTablesInput struct {
	RunID        string         `json:"run_id"`
	DocumentID   int64          `json:"document_id"`
	Page         int            `json:"page"`
	OutputFormat string         `json:"output_format"`
	Tables       []models.Table `json:"tables"`
}

type EmitTablesOutput struct {
	Files []string `json:"files"`
}

type ArchiveOutputsInput struct {
	RunID string `json:"run_id"`
}

type ArchiveOutputsOutput struct {
	ArchivePath string `json:"archive_path"`
	FileCount   int    `json:"file_count"`
	SHA256      string `json:"sha256"`
}

type DeliverArchiveInput struct {
	RunUUID     string `json:"run_uuid"`
	ArchivePath string `json:"archive_path"`
}

type WriteRunManifestInput struct {
	RunID    string         `json:"run_id"`
	Manifest map[string]any `json:"manifest"`
}

type WriteRunManifestOutput struct {
	Path string `json:"path"`
}

type UpsertRunInput struct {
	Record models.RunRecord `json:"record"`
}

type UpdateRunStatusInput struct {
	RunID   string `json:"run_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type RecordChargeInput struct {
	RunID   string `json:"run_id"`
	Credits int    `json:"credits"`
}

type CompleteRunInput struct {
	RunID         string `json:"run_id"`
	PagesAnalyzed int    `json:"pages_analyzed"`
	TablesFound   int    `json:"tables_found"`
	FilesWritten  int    `json:"files_written"`
	ArchiveSHA256 string `json:"archive_sha256"`
}

type CleanupRunDirInput struct {
	RunID string `json:"run_id"`
}
