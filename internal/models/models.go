package models

import "time"

type Document struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title,omitempty"`
	PageCount int    `json:"page_count"`
	AssetURL  string `json:"asset_url"`
}

// PageRange is the configured page window, 1-based and inclusive on both
// ends. It is applied per document: the end is clamped to the document
// length, the start never is.
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// LastPage returns the configured end clamped to the document length.
func (r PageRange) LastPage(pageCount int) int {
	if r.End < pageCount {
		return r.End
	}
	return pageCount
}

// PagesWithin returns how many pages of a document fall inside the range,
// never negative. Used for reporting, not for billing.
func (r PageRange) PagesWithin(pageCount int) int {
	n := r.LastPage(pageCount) - r.Start + 1
	if n < 0 {
		return 0
	}
	return n
}

// Table is one detected table: rows in top-to-bottom order, each row the
// cell text in left-to-right order. Rows may be ragged when the detector
// reports no cell for a grid position.
type Table struct {
	Rows [][]string `json:"rows"`
}

func (t Table) RowCount() int { return len(t.Rows) }

func (t Table) ColCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

type RunRecord struct {
	RunID          string    `json:"run_id"`
	Organization   int64     `json:"organization"`
	OutputFormat   string    `json:"output_format"`
	StartPage      int       `json:"start_page"`
	EndPage        int       `json:"end_page"`
	DocumentCount  int       `json:"document_count"`
	Status         string    `json:"status"`
	Message        string    `json:"message,omitempty"`
	CreditsCharged int       `json:"credits_charged"`
	PagesAnalyzed  int       `json:"pages_analyzed"`
	TablesFound    int       `json:"tables_found"`
	FilesWritten   int       `json:"files_written"`
	ArchiveSHA256  string    `json:"archive_sha256,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
