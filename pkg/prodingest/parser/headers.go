// Package parser converts raw workbook sheets into normalized tables.
package parser

import (
	"strings"
	"unicode"

	"github.com/osdupipe/prodingest/pkg/prodingest/schema"
)

// placeholderPrefix marks a header cell that carried no real label in the
// source spreadsheet (e.g. "Unnamed: 3").
const placeholderPrefix = "unnamed"

// staleDateToken is a literal artifact that leaks into header text when a
// date-typed cell ends up in the header block. It is stripped verbatim.
const staleDateToken = "YYYY-MM-DDT00:00:00Z"

// NormalizeHeaders produces the final column names for a sheet from its
// two-row header block: the primary label row and the additional-headers row
// directly beneath it.
//
// Special-case sheets take the additional row verbatim. All other sheets
// get cleaned primary labels (numeric dedup suffixes removed, placeholders
// forward-filled from the nearest preceding real header) merged with the
// additional cell as "{primary} {additional}". On the exception sheet a
// reserved additional label replaces the merge entirely.
//
// Column count and order follow the authoritative row. Forward-fill state
// never carries over between invocations.
func NormalizeHeaders(primary, additional []string, sheetName string) []string {
	if schema.IsSpecialCase(sheetName) {
		names := make([]string, len(additional))
		for i, h := range additional {
			names[i] = stripStaleDate(cleanLabel(h))
		}
		return names
	}

	names := make([]string, len(primary))

	// Left-to-right fold carrying the last non-placeholder header so that
	// placeholder columns inherit their left neighbor.
	lastValid := ""
	for i, h := range primary {
		cleaned := cleanLabel(h)
		if isPlaceholder(cleaned) {
			// A placeholder in the first column has no predecessor and
			// stays as-is.
			if lastValid != "" {
				cleaned = lastValid
			}
		} else {
			cleaned = stripNumericSuffix(cleaned)
			lastValid = cleaned
		}
		names[i] = stripStaleDate(cleaned)
	}

	for i := range names {
		extra := ""
		if i < len(additional) {
			extra = stripStaleDate(cleanLabel(additional[i]))
		}
		if extra == "" {
			continue
		}
		if sheetName == schema.ExceptionSheet && schema.IsReservedLabel(extra) {
			names[i] = extra
			continue
		}
		names[i] = strings.TrimSpace(names[i]) + " " + extra
	}

	return names
}

// cleanLabel trims surrounding whitespace and collapses embedded newlines
// into single spaces.
func cleanLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

// stripNumericSuffix removes a ".N" dedup suffix appended to repeated
// headers, e.g. "Volume.1" becomes "Volume".
func stripNumericSuffix(label string) string {
	idx := strings.LastIndex(label, ".")
	if idx < 0 || idx == len(label)-1 {
		return label
	}
	for _, r := range label[idx+1:] {
		if !unicode.IsDigit(r) {
			return label
		}
	}
	return strings.TrimSpace(label[:idx])
}

// stripStaleDate removes the literal date-format token from a header.
func stripStaleDate(label string) string {
	if !strings.Contains(label, staleDateToken) {
		return label
	}
	return strings.TrimSpace(strings.ReplaceAll(label, staleDateToken, ""))
}

// isPlaceholder reports whether a cleaned label is a generic unnamed-column
// placeholder.
func isPlaceholder(label string) bool {
	return strings.HasPrefix(strings.ToLower(label), placeholderPrefix)
}
