package dates

import (
	"strings"
	"time"
)

const displayLayout = "Jan 2, 2006"

// Parse accepts the RFC 3339 timestamps found in exports, with or without
// fractional seconds.
func Parse(raw string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Display formats a timestamp for humans, in the timestamp's own offset.
// Unparseable input is returned as is.
func Display(raw string) string {
	t, ok := Parse(raw)
	if !ok {
		return raw
	}
	return t.Format(displayLayout)
}

// Day returns the calendar part (YYYY-MM-DD) of a timestamp as written,
// without moving it to another offset.
func Day(raw string) string {
	if t, ok := Parse(raw); ok {
		return t.Format(time.DateOnly)
	}
	day, _, _ := strings.Cut(raw, "T")
	return day
}

// FileStamp is the date prefix of generated documents.
func FileStamp(now time.Time) string {
	return now.Format(time.DateOnly)
}
