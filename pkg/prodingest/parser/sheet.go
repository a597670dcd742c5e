package parser

import (
	"fmt"

	"github.com/osdupipe/prodingest/pkg/prodingest/models"
	"github.com/osdupipe/prodingest/pkg/prodingest/schema"
)

// ClassificationColumn is appended to every normalized row.
const ClassificationColumn = "ResourceSecurityClassification"

// ClassificationValue is the fixed classification applied to all ingested
// production data.
const ClassificationValue = "INTERNAL USE"

// ConversionError reports a sheet that could not be normalized.
type ConversionError struct {
	SheetName string
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion error in sheet %q: %v", e.SheetName, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ProcessSheet converts one raw sheet grid into a normalized table. The grid
// must already exclude the fixed title offset; its first two rows are the
// compound header block, the rest are data.
//
// An empty result short-circuits before validation. Otherwise the normalized
// column count must exactly match the schema entry for the sheet, labels are
// mapped case- and space-insensitively to canonical keys (unmatched labels
// pass through unchanged), and the classification column is appended to
// every row.
func ProcessSheet(grid [][]string, sheetName string) (*models.Table, error) {
	entry, ok := schema.Lookup(sheetName)
	if !ok {
		return nil, &ConversionError{SheetName: sheetName, Err: fmt.Errorf("sheet not in schema registry")}
	}

	table := &models.Table{Name: entry.TableName}
	if len(grid) <= 2 {
		// Header block only, nothing to validate or emit.
		return table, nil
	}

	primary := trimRow(grid[0])
	additional := trimRow(grid[1])
	names := NormalizeHeaders(primary, additional, sheetName)

	data := grid[2:]
	if !hasData(data) {
		return table, nil
	}

	if len(names) != entry.ColumnCount() {
		return nil, &ConversionError{
			SheetName: sheetName,
			Err: fmt.Errorf("column count mismatch: schema expects %d columns, found %d",
				entry.ColumnCount(), len(names)),
		}
	}

	canonical := schema.CanonicalKeys(entry)
	columns := make([]string, len(names))
	for i, name := range names {
		if key, ok := canonical[schema.FoldKey(name)]; ok {
			columns[i] = key
		} else {
			// Lenient: an unmatched label passes through unchanged.
			columns[i] = name
		}
	}

	table.Columns = append(columns, ClassificationColumn)
	for _, row := range data {
		record := make(map[string]string, len(columns)+1)
		for i, key := range columns {
			if i < len(row) {
				record[key] = row[i]
			} else {
				record[key] = ""
			}
		}
		record[ClassificationColumn] = ClassificationValue
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// trimRow strips surrounding whitespace from every cell.
func trimRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = cleanLabel(cell)
	}
	return out
}

// hasData reports whether any cell in the rows is non-empty.
func hasData(rows [][]string) bool {
	for _, row := range rows {
		for _, cell := range row {
			if cell != "" {
				return true
			}
		}
	}
	return false
}
