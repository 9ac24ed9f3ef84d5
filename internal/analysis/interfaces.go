package analysis

import (
	"context"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/models"
)

// AnalyzeOptions tunes one analysis call.
type AnalyzeOptions struct {
	// SaveImagePath, when set, keeps a copy of the submitted image at
	// this path before the service is called. The run retains what was
	// actually analyzed even when the call fails.
	SaveImagePath string `json:"save_image_path,omitempty"`
}

// TableAnalyzer detects tables in one page image. Implementations return
// tables in the order the service reports them; a page with no tables
// returns an empty slice, not an error.
type TableAnalyzer interface {
	AnalyzeTables(ctx context.Context, image []byte, opts AnalyzeOptions) ([]models.Table, error)
	Name() string
}
