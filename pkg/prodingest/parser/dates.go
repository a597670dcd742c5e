package parser

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ProductionDataMarker is the filename convention carried by monthly
// production deliverables. The five characters following it encode the
// reporting month as "MMMyy", e.g. "PE-IA Production Data_Mar24_Region".
const ProductionDataMarker = "PE-IA Production Data_"

// monthAbbrevs maps lowercase 3-letter month abbreviations to month numbers.
var monthAbbrevs = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// YearMonth derives the "YYYYMM" bucket for a blob. When the blob name
// carries the production-data marker the month is parsed from the filename
// (case-insensitive month abbreviation, two-digit year in the 21st century);
// a malformed month token is an error rather than a silent fallback.
// Names without the marker fall back to the blob's creation timestamp.
// The derivation is idempotent and does no timezone handling.
func YearMonth(name string, created time.Time) (string, error) {
	idx := strings.Index(name, ProductionDataMarker)
	if idx < 0 {
		if created.IsZero() {
			return "", fmt.Errorf("no production-data marker in %q and no creation time available", name)
		}
		return created.Format("200601"), nil
	}

	token := name[idx+len(ProductionDataMarker):]
	if len(token) < 5 {
		return "", fmt.Errorf("truncated month token after production-data marker in %q", name)
	}
	token = token[:5]

	month, ok := monthAbbrevs[strings.ToLower(token[:3])]
	if !ok {
		return "", fmt.Errorf("unknown month abbreviation %q in %q", token[:3], name)
	}
	for _, r := range token[3:] {
		if !unicode.IsDigit(r) {
			return "", fmt.Errorf("malformed year digits %q in %q", token[3:], name)
		}
	}

	// Two-digit years are fixed to the 21st century.
	return fmt.Sprintf("20%s%02d", token[3:], int(month)), nil
}
