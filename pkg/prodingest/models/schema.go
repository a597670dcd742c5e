package models

// Column defines a single canonical column of a schema entry.
type Column struct {
	// Key is the canonical column name written to CSV headers.
	Key string `json:"key"`
	// DisplayName is the header text expected after normalization.
	DisplayName string `json:"display_name"`
}

// SchemaEntry describes the expected shape of one recognized sheet.
type SchemaEntry struct {
	// SheetName is the workbook sheet this entry recognizes.
	SheetName string `json:"sheet_name"`
	// TableName is the canonical name for the sheet's output table.
	TableName string `json:"table_name"`
	// Columns lists expected columns in schema order.
	Columns []Column `json:"columns"`
}

// ColumnCount returns the number of declared columns.
func (e SchemaEntry) ColumnCount() int {
	return len(e.Columns)
}

// DisplayNames returns the declared display names in schema order.
func (e SchemaEntry) DisplayNames() []string {
	names := make([]string, len(e.Columns))
	for i, col := range e.Columns {
		names[i] = col.DisplayName
	}
	return names
}
