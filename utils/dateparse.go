package utils

import (
	"fmt"
	"strings"
	"time"
)

// dobLayouts are tried in order; the first layout that parses wins.
var dobLayouts = []string{
	"02-01-2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDateInput parses a date of birth supplied as DD-MM-YYYY, ISO
// YYYY-MM-DD, or any of the accepted fallback formats. The result is
// truncated to a calendar date.
func ParseDateInput(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}

	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// Local midnight keeps the calendar date stable through the
			// DATE column round trip (DSN uses loc=Local).
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", input)
}

// FormatDisplayDate renders a date as DD-MM-YYYY for display. Zero dates
// render as "N/A". The value is computed at read time, never stored.
func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("02-01-2006")
}

// FormatDisplayDatePtr renders pointer timestamps the same way.
func FormatDisplayDatePtr(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return FormatDisplayDate(*t)
}

// StartOfToday returns midnight of the current calendar day in server local
// time, used for the approved-today dashboard count.
func StartOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
