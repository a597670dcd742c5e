package parser

import (
	"reflect"
	"testing"
)

func TestNormalizeHeadersMergesAdditionalRow(t *testing.T) {
	primary := []string{"Date", "Well Name", "Oil Volume", "Gas Volume"}
	additional := []string{"", "", "bbl", "MSCF"}

	got := NormalizeHeaders(primary, additional, "Daily Production")
	want := []string{"Date", "Well Name", "Oil Volume bbl", "Gas Volume MSCF"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNormalizeHeadersForwardFill(t *testing.T) {
	// A dedup suffix on the first column and a placeholder on the second:
	// the placeholder inherits the cleaned neighbor, then both get the
	// additional header suffix.
	primary := []string{"Volume.1", "Unnamed: 2"}
	additional := []string{"bbl", "bbl"}

	got := NormalizeHeaders(primary, additional, "Daily Production")
	want := []string{"Volume bbl", "Volume bbl"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNormalizeHeadersForwardFillInvariant(t *testing.T) {
	primary := []string{"Oil Rate", "Unnamed: 1", "Unnamed: 2", "Water Cut", "Unnamed: 4"}
	additional := make([]string, len(primary))

	got := NormalizeHeaders(primary, additional, "Injection")
	for i := 1; i < len(got); i++ {
		if isPlaceholder(primary[i]) && got[i] != got[i-1] {
			t.Errorf("Column %d: expected forward-filled %q, got %q", i, got[i-1], got[i])
		}
	}
}

func TestNormalizeHeadersPlaceholderFirstColumn(t *testing.T) {
	// No predecessor to inherit from: the placeholder stays as-is.
	primary := []string{"Unnamed: 0", "Well"}
	additional := []string{"", ""}

	got := NormalizeHeaders(primary, additional, "Daily Production")
	if got[0] != "Unnamed: 0" {
		t.Errorf("Expected first-column placeholder to pass through, got %q", got[0])
	}
}

func TestNormalizeHeadersSpecialCaseSheet(t *testing.T) {
	// The additional row is authoritative; primary text is ignored.
	primary := []string{"ignored", "ignored", "ignored"}
	additional := []string{"Date", "Well", "Choke Size"}

	got := NormalizeHeaders(primary, additional, "Choke Change")
	want := []string{"Date", "Well", "Choke Size"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNormalizeHeadersReservedLabelOverride(t *testing.T) {
	primary := []string{"Production Date", "Well", "Choke Size"}
	additional := []string{"Date", "Well Name", "64ths"}

	got := NormalizeHeaders(primary, additional, "Well Tests")
	want := []string{"Date", "Well Name", "Choke Size 64ths"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNormalizeHeadersReservedLabelOnlyOnExceptionSheet(t *testing.T) {
	primary := []string{"Production Date"}
	additional := []string{"Date"}

	got := NormalizeHeaders(primary, additional, "Daily Production")
	if got[0] != "Production Date Date" {
		t.Errorf("Expected plain merge on non-exception sheet, got %q", got[0])
	}
}

func TestNormalizeHeadersStripsStaleDateToken(t *testing.T) {
	primary := []string{"Report YYYY-MM-DDT00:00:00Z"}
	additional := []string{""}

	got := NormalizeHeaders(primary, additional, "Daily Production")
	if got[0] != "Report" {
		t.Errorf("Expected date token stripped, got %q", got[0])
	}
}

func TestNormalizeHeadersCleansNewlines(t *testing.T) {
	primary := []string{"Well\nName  "}
	additional := []string{""}

	got := NormalizeHeaders(primary, additional, "Daily Production")
	if got[0] != "Well Name" {
		t.Errorf("Expected embedded newline collapsed, got %q", got[0])
	}
}

func TestStripNumericSuffix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Volume.1", "Volume"},
		{"Volume.12", "Volume"},
		{"Volume", "Volume"},
		{"Water Cut %.1", "Water Cut %"},
		{"v2.0a", "v2.0a"},
		{"Trailing.", "Trailing."},
	}
	for _, c := range cases {
		if got := stripNumericSuffix(c.in); got != c.want {
			t.Errorf("stripNumericSuffix(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}
