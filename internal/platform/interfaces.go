package platform

import (
	"context"
	"io"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/models"
)

// DocumentStore reads document metadata and page rasters from the platform.
type DocumentStore interface {
	// GetDocuments resolves ids to documents, preserving the given order.
	GetDocuments(ctx context.Context, ids []int64) ([]models.Document, error)
	// GetPageImage fetches the large raster of one page, 1-based.
	GetPageImage(ctx context.Context, doc models.Document, page int) ([]byte, error)
}

// CreditLedger debits premium credits from an organization. A failed
// charge is just an error: the platform does not distinguish an empty
// balance from an outage in its response, so neither do we.
type CreditLedger interface {
	ChargeCredits(ctx context.Context, organization int64, amount int, note string) error
}

// RunReporter pushes run-visible state back to the platform.
type RunReporter interface {
	SetMessage(ctx context.Context, runUUID, message string) error
	UploadFile(ctx context.Context, runUUID, name string, r io.Reader, size int64) error
}
