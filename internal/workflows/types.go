package workflows

type RunInput struct {
	RunID        string  `json:"run_id"`
	DocumentIDs  []int64 `json:"document_ids"`
	Organization int64   `json:"organization"`
	OutputFormat string  `json:"output_format"`
	StartPage    int     `json:"start_page"`
	EndPage      int     `json:"end_page"`
}

type RunResult struct {
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
	CreditsCharged int    `json:"credits_charged"`
	PagesAnalyzed  int    `json:"pages_analyzed"`
	TablesFound    int    `json:"tables_found"`
	FilesWritten   int    `json:"files_written"`
	ArchiveSHA256  string `json:"archive_sha256,omitempty"`
}

type RunProgress struct {
	RunID           string `json:"run_id"`
	State           string `json:"state"`
	CurrentDocument int64  `json:"current_document,omitempty"`
	CurrentPage     int    `json:"current_page,omitempty"`
	DocumentsTotal  int    `json:"documents_total"`
	DocumentsDone   int    `json:"documents_done"`
	PagesExpected   int    `json:"pages_expected"`
	PagesAnalyzed   int    `json:"pages_analyzed"`
	TablesFound     int    `json:"tables_found"`
	FilesWritten    int    `json:"files_written"`
	Message         string `json:"message,omitempty"`
}
