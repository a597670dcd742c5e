// Package output serializes normalized tables to CSV and builds their
// destination storage keys.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/osdupipe/prodingest/pkg/prodingest/models"
)

// ContentType is the MIME type stored with uploaded CSVs.
const ContentType = "text/csv"

// Encode serializes a normalized table to UTF-8 CSV bytes. The header row is
// the table's canonical column keys in output order.
func Encode(t *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, key := range t.Columns {
			record[i] = row[key]
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ObjectKey builds the deterministic destination key for one table's CSV:
// <root>/<country-lowercased>/<YYYYMM>/<TableName>.csv. An empty root is
// omitted.
func ObjectKey(root, country, yearMonth, tableName string) string {
	parts := []string{strings.ToLower(country), yearMonth, tableName + ".csv"}
	if root != "" {
		parts = append([]string{strings.Trim(root, "/")}, parts...)
	}
	return strings.Join(parts, "/")
}
