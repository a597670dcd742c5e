// Package models defines the data types shared across the ingestion pipeline.
package models

// Table is a normalized table produced from one recognized sheet.
type Table struct {
	// Name is the canonical table name assigned by the schema registry.
	Name string `json:"name"`
	// Columns holds column keys in output order.
	Columns []string `json:"columns"`
	// Rows maps column key to cell value, one map per data row.
	Rows []map[string]string `json:"rows"`
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table has no data rows.
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// TableSet is an ordered collection of tables keyed by canonical table name.
// Insertion order is preserved; putting an existing name replaces the table
// in place (last write wins).
type TableSet struct {
	names  []string
	tables map[string]*Table
}

// NewTableSet creates an empty table set.
func NewTableSet() *TableSet {
	return &TableSet{tables: make(map[string]*Table)}
}

// Put stores a table under its canonical name.
func (s *TableSet) Put(name string, t *Table) {
	if _, ok := s.tables[name]; !ok {
		s.names = append(s.names, name)
	}
	s.tables[name] = t
}

// Get returns the table stored under name.
func (s *TableSet) Get(name string) (*Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// Names returns canonical table names in insertion order.
func (s *TableSet) Names() []string {
	return s.names
}

// Len returns the number of tables.
func (s *TableSet) Len() int {
	return len(s.names)
}

// GeneratedFile records one CSV produced by the upload stage. It exists only
// within a single invocation and drives the submission stage.
type GeneratedFile struct {
	// TableName is the canonical table the CSV was generated from.
	TableName string `json:"table_name"`
	// RowCount is the number of data rows written (header excluded).
	RowCount int `json:"row_count"`
	// ObjectKey is the destination storage key of the CSV.
	ObjectKey string `json:"object_key"`
}
