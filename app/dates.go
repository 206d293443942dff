package app

import (
	"time"
)

// dateLayouts are tried in order for best-effort date parsing. Day-first
// layouts come before month-first since the input convention is day-first.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseDate attempts all known layouts and reports whether any matched
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// monthKey truncates a timestamp to the first day of its calendar month
func monthKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
