package utils

import (
	"testing"
	"time"
)

func TestParseDateInputAcceptedFormats(t *testing.T) {
	want := time.Date(1988, 3, 15, 0, 0, 0, 0, time.Local)
	inputs := []string{
		"15-03-1988",
		"1988-03-15",
		"1988-03-15T00:00:00Z",
		"1988-03-15 00:00:00",
		"15/03/1988",
		"March 15, 1988",
		"Mar 15, 1988",
		"  15-03-1988  ",
	}
	for _, in := range inputs {
		got, err := ParseDateInput(in)
		if err != nil {
			t.Errorf("ParseDateInput(%q) returned error: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDateInput(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDateInputDayFirstWinsOverISO(t *testing.T) {
	// 05-04-2000 is ambiguous; day-first is the documented precedence.
	got, err := ParseDateInput("05-04-2000")
	if err != nil {
		t.Fatal(err)
	}
	if got.Day() != 5 || got.Month() != time.April {
		t.Fatalf("expected 5 April 2000, got %v", got)
	}
}

func TestParseDateInputRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "31-02-20xx", "1988/03/15"} {
		if _, err := ParseDateInput(in); err == nil {
			t.Errorf("ParseDateInput(%q) should fail", in)
		}
	}
}

func TestFormatDisplayDate(t *testing.T) {
	d := time.Date(1990, 12, 31, 0, 0, 0, 0, time.Local)
	if got := FormatDisplayDate(d); got != "31-12-1990" {
		t.Fatalf("FormatDisplayDate = %q", got)
	}
	if got := FormatDisplayDate(time.Time{}); got != "N/A" {
		t.Fatalf("zero date = %q, want N/A", got)
	}
	if got := FormatDisplayDatePtr(nil); got != "N/A" {
		t.Fatalf("nil pointer = %q, want N/A", got)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	in := "20-07-1985"
	d, err := ParseDateInput(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatDisplayDate(d); got != in {
		t.Fatalf("round trip %q -> %q", in, got)
	}
}

func TestStartOfToday(t *testing.T) {
	got := StartOfToday()
	now := time.Now()
	if got.Year() != now.Year() || got.YearDay() != now.YearDay() {
		t.Fatalf("StartOfToday on wrong day: %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Fatalf("StartOfToday not midnight: %v", got)
	}
}
