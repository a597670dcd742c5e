package parser

import (
	"testing"
	"time"
)

func TestYearMonthFromMarker(t *testing.T) {
	got, err := YearMonth("PE-IA Production Data_Mar24_Region.xlsx", time.Time{})
	if err != nil {
		t.Fatalf("YearMonth failed: %v", err)
	}
	if got != "202403" {
		t.Errorf("Expected 202403, got %s", got)
	}
}

func TestYearMonthMarkerCaseInsensitiveMonth(t *testing.T) {
	got, err := YearMonth("reports/PE-IA Production Data_DEC23.xlsx", time.Time{})
	if err != nil {
		t.Fatalf("YearMonth failed: %v", err)
	}
	if got != "202312" {
		t.Errorf("Expected 202312, got %s", got)
	}
}

func TestYearMonthIdempotent(t *testing.T) {
	name := "PE-IA Production Data_Jul25_Block7.xlsx"
	first, err := YearMonth(name, time.Time{})
	if err != nil {
		t.Fatalf("YearMonth failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := YearMonth(name, time.Time{})
		if err != nil {
			t.Fatalf("YearMonth failed on repeat: %v", err)
		}
		if again != first {
			t.Errorf("Expected stable result %s, got %s", first, again)
		}
	}
}

func TestYearMonthFallbackToCreationTime(t *testing.T) {
	created := time.Date(2024, time.November, 17, 8, 30, 0, 0, time.UTC)
	got, err := YearMonth("monthly-extract.xlsx", created)
	if err != nil {
		t.Fatalf("YearMonth failed: %v", err)
	}
	if got != "202411" {
		t.Errorf("Expected 202411, got %s", got)
	}
}

func TestYearMonthMalformedMonth(t *testing.T) {
	if _, err := YearMonth("PE-IA Production Data_Xyz24.xlsx", time.Now()); err == nil {
		t.Error("Expected error for unknown month abbreviation, got nil")
	}
}

func TestYearMonthTruncatedToken(t *testing.T) {
	if _, err := YearMonth("PE-IA Production Data_Ma", time.Now()); err == nil {
		t.Error("Expected error for truncated month token, got nil")
	}
}

func TestYearMonthMalformedYearDigits(t *testing.T) {
	if _, err := YearMonth("PE-IA Production Data_Mar2x.xlsx", time.Now()); err == nil {
		t.Error("Expected error for malformed year digits, got nil")
	}
}

func TestYearMonthNoMarkerNoCreationTime(t *testing.T) {
	if _, err := YearMonth("monthly-extract.xlsx", time.Time{}); err == nil {
		t.Error("Expected error when neither marker nor creation time is available, got nil")
	}
}
