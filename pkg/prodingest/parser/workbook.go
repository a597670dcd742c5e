package parser

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/osdupipe/prodingest/pkg/prodingest/models"
	"github.com/osdupipe/prodingest/pkg/prodingest/schema"
)

// titleRowOffset is the fixed number of leading rows skipped before the
// two-row header block on every sheet.
const titleRowOffset = 1

// ExtractWorkbook converts every recognized sheet of a workbook into a
// normalized table.
//
// The registry's sheet set is required: if any recognized sheet name is
// absent the whole conversion fails before any sheet is processed. Extra
// sheets not in the registry are skipped with a warning. Non-empty results
// are collected under their canonical table names in sheet encounter order;
// a later duplicate mapping to the same canonical name replaces the earlier
// result.
func ExtractWorkbook(data []byte, logger *slog.Logger) (*models.TableSet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	present := make(map[string]bool, len(sheetList))
	for _, name := range sheetList {
		present[name] = true
	}

	var missing []string
	for _, required := range schema.SheetNames() {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("workbook is missing required sheets: %v", missing)
	}

	set := models.NewTableSet()
	for _, sheetName := range sheetList {
		entry, ok := schema.Lookup(sheetName)
		if !ok {
			if logger != nil {
				logger.Warn("Skipping unrecognized sheet", "sheet", sheetName)
			}
			continue
		}

		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, &ConversionError{SheetName: sheetName, Err: err}
		}
		if len(rows) <= titleRowOffset {
			continue
		}

		table, err := ProcessSheet(rows[titleRowOffset:], sheetName)
		if err != nil {
			return nil, err
		}
		if table.IsEmpty() {
			continue
		}
		set.Put(entry.TableName, table)
	}

	return set, nil
}
