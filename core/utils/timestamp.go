package utils

import (
	"fmt"
	"time"
)

// TimestampLayout is the textual layout of record timestamps.
// Microseconds are always written; parsing also accepts values without them.
const TimestampLayout = "2006-01-02 15:04:05.000000"

const parseLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t in local time using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// ParseTimestamp parses a value produced by FormatTimestamp.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.ParseInLocation(parseLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid record timestamp %q: %w", value, err)
	}
	return t, nil
}

// SubmissionIsOlder reports whether the calendar date of created lies more than
// maxDays days before the calendar date of now. Exactly maxDays is not older.
func SubmissionIsOlder(created time.Time, maxDays int, now time.Time) bool {
	return daysBetween(created, now) > maxDays
}

// daysBetween counts whole calendar days from a to b in local time.
func daysBetween(a, b time.Time) int {
	a, b = a.Local(), b.Local()
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
