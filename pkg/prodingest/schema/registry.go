// Package schema holds the static registry of recognized sheets and their
// canonical column definitions. The registry is fixed configuration data;
// nothing mutates it after process start.
package schema

import (
	"strings"

	"github.com/osdupipe/prodingest/pkg/prodingest/models"
)

// ExceptionSheet is the one sheet where reserved additional-header labels
// override the usual primary+additional merge.
const ExceptionSheet = "Well Tests"

// ReservedLabels are used verbatim when they appear in the additional header
// row of the exception sheet.
var ReservedLabels = []string{"Date", "Well Name"}

// specialCaseSheets use the additional header row as the authoritative column
// names; the primary row text is ignored for these.
var specialCaseSheets = map[string]bool{
	"Choke Change": true,
	"Well Status":  true,
}

// entries lists every recognized sheet in registry order. A workbook missing
// any of these sheets is rejected outright.
var entries = []models.SchemaEntry{
	{
		SheetName: "Daily Production",
		TableName: "DailyProduction",
		Columns: []models.Column{
			{Key: "Date", DisplayName: "Date"},
			{Key: "WellName", DisplayName: "Well Name"},
			{Key: "OilVolumeBbl", DisplayName: "Oil Volume bbl"},
			{Key: "GasVolumeMscf", DisplayName: "Gas Volume MSCF"},
			{Key: "WaterVolumeBbl", DisplayName: "Water Volume bbl"},
			{Key: "HoursOn", DisplayName: "Hours On"},
		},
	},
	{
		SheetName: "Well Tests",
		TableName: "WellTest",
		Columns: []models.Column{
			{Key: "Date", DisplayName: "Date"},
			{Key: "WellName", DisplayName: "Well Name"},
			{Key: "ChokeSize", DisplayName: "Choke Size 64ths"},
			{Key: "OilRateBpd", DisplayName: "Oil Rate bpd"},
			{Key: "GasRateMscfd", DisplayName: "Gas Rate MSCFD"},
			{Key: "WaterCutPct", DisplayName: "Water Cut pct"},
		},
	},
	{
		SheetName: "Choke Change",
		TableName: "ChokeChange",
		Columns: []models.Column{
			{Key: "Date", DisplayName: "Date"},
			{Key: "WellName", DisplayName: "Well"},
			{Key: "ChokeSize", DisplayName: "Choke Size"},
		},
	},
	{
		SheetName: "Well Status",
		TableName: "WellStatus",
		Columns: []models.Column{
			{Key: "Date", DisplayName: "Date"},
			{Key: "WellName", DisplayName: "Well"},
			{Key: "Status", DisplayName: "Status"},
		},
	},
	{
		SheetName: "Injection",
		TableName: "Injection",
		Columns: []models.Column{
			{Key: "Date", DisplayName: "Date"},
			{Key: "WellName", DisplayName: "Well Name"},
			{Key: "WaterInjectedBbl", DisplayName: "Water Injected bbl"},
			{Key: "GasInjectedMscf", DisplayName: "Gas Injected MSCF"},
		},
	},
	{
		SheetName: "Downtime",
		TableName: "Downtime",
		Columns: []models.Column{
			{Key: "Date", DisplayName: "Date"},
			{Key: "WellName", DisplayName: "Well Name"},
			{Key: "HoursDown", DisplayName: "Hours Down"},
			{Key: "Reason", DisplayName: "Reason"},
		},
	},
}

// index maps sheet name to its registry entry.
var index = func() map[string]models.SchemaEntry {
	m := make(map[string]models.SchemaEntry, len(entries))
	for _, e := range entries {
		m[e.SheetName] = e
	}
	return m
}()

// Lookup returns the schema entry for a sheet name.
func Lookup(sheetName string) (models.SchemaEntry, bool) {
	e, ok := index[sheetName]
	return e, ok
}

// SheetNames returns all recognized sheet names in registry order. This set
// is also the set of sheets a workbook must contain.
func SheetNames() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.SheetName
	}
	return names
}

// IsSpecialCase reports whether the sheet's additional header row is
// authoritative.
func IsSpecialCase(sheetName string) bool {
	return specialCaseSheets[sheetName]
}

// IsReservedLabel reports whether label is one of the reserved
// additional-header labels of the exception sheet.
func IsReservedLabel(label string) bool {
	for _, r := range ReservedLabels {
		if label == r {
			return true
		}
	}
	return false
}

// FoldKey normalizes a header label for case- and space-insensitive matching
// against schema display names.
func FoldKey(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), ""))
}

// CanonicalKeys returns a lookup from folded display name to canonical
// column key for one entry.
func CanonicalKeys(entry models.SchemaEntry) map[string]string {
	m := make(map[string]string, len(entry.Columns))
	for _, col := range entry.Columns {
		m[FoldKey(col.DisplayName)] = col.Key
	}
	return m
}
