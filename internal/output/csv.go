package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/models"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/util"
)

// WriteCSV emits one table under dir and returns the written path.
// Rows may be ragged; encoding/csv quotes whatever the detector produced.
func WriteCSV(dir string, docID int64, page, index int, table models.Table) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	path := filepath.Join(dir, TableFileName(docID, page, index, "csv"))
	if err := util.WriteBytesAtomic(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return path, nil
}
