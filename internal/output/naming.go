package output

import "fmt"

// ArchiveName is the single deliverable uploaded back to the platform.
const ArchiveName = "all_tables.zip"

// TableFileName names one emitted table, "{document id}-{page}-table{index}"
// with the extension picked by the run's output format. Index is zero-based
// in response order, so two tables on one page never collide. Any format
// other than "csv" gets the spreadsheet extension.
func TableFileName(docID int64, page, index int, format string) string {
	ext := ".xlsx"
	if format == "csv" {
		ext = ".csv"
	}
	return fmt.Sprintf("%d-%d-table%d%s", docID, page, index, ext)
}
