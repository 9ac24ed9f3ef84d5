package output

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/models"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/util"
)

// WriteXLSX emits one table as a single-sheet workbook under dir and
// returns the written path.
func WriteXLSX(dir string, docID int64, page, index int, table models.Table) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for ri, row := range table.Rows {
		for ci, cell := range row {
			name, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				return "", fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, name, cell); err != nil {
				return "", fmt.Errorf("set cell %s: %w", name, err)
			}
		}
	}

	path := filepath.Join(dir, TableFileName(docID, page, index, "xlsx"))
	if err := util.EnsureDir(dir); err != nil {
		return "", err
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save xlsx: %w", err)
	}
	return path, nil
}
