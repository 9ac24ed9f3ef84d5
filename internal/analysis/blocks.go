package analysis

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/models"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/util"
)

// TablesFromBlocks materializes the block graph of an AnalyzeDocument
// response into tables. TABLE blocks are kept in response order. Each
// TABLE's CHILD cells carry 1-based row and column indices; the grid is
// sized to the maximum seen, and positions no cell claims stay empty.
func TablesFromBlocks(blocks []types.Block) []models.Table {
	byID := make(map[string]types.Block, len(blocks))
	for _, b := range blocks {
		if b.Id != nil {
			byID[*b.Id] = b
		}
	}

	var tables []models.Table
	for _, b := range blocks {
		if b.BlockType != types.BlockTypeTable {
			continue
		}
		tables = append(tables, tableFromBlock(b, byID))
	}
	return tables
}

type gridPos struct {
	row, col int
}

func tableFromBlock(table types.Block, byID map[string]types.Block) models.Table {
	cells := make(map[gridPos]string)
	rows, cols := 0, 0
	for _, rel := range table.Relationships {
		if rel.Type != types.RelationshipTypeChild {
			continue
		}
		for _, id := range rel.Ids {
			cell, ok := byID[id]
			if !ok || cell.BlockType != types.BlockTypeCell {
				continue
			}
			r := int(aws.ToInt32(cell.RowIndex))
			c := int(aws.ToInt32(cell.ColumnIndex))
			if r < 1 || c < 1 {
				continue
			}
			if r > rows {
				rows = r
			}
			if c > cols {
				cols = c
			}
			cells[gridPos{r, c}] = cellText(cell, byID)
		}
	}

	out := models.Table{Rows: make([][]string, rows)}
	for r := 1; r <= rows; r++ {
		row := make([]string, cols)
		for c := 1; c <= cols; c++ {
			row[c-1] = cells[gridPos{r, c}]
		}
		out.Rows[r-1] = row
	}
	return out
}

// cellText joins a cell's WORD children with single spaces. Checkboxes
// come back as SELECTION_ELEMENT blocks and are rendered as their
// selection status, the way the service's own CSV export does.
func cellText(cell types.Block, byID map[string]types.Block) string {
	var parts []string
	for _, rel := range cell.Relationships {
		if rel.Type != types.RelationshipTypeChild {
			continue
		}
		for _, id := range rel.Ids {
			child, ok := byID[id]
			if !ok {
				continue
			}
			switch child.BlockType {
			case types.BlockTypeWord:
				if child.Text != nil {
					parts = append(parts, *child.Text)
				}
			case types.BlockTypeSelectionElement:
				parts = append(parts, string(child.SelectionStatus))
			}
		}
	}
	return util.SanitizeCellText(strings.Join(parts, " "))
}
