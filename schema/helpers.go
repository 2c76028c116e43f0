package schema

import (
	"fmt"
	"time"
)

// FormatSignedPercent renders a rounded percentage with an explicit sign for
// non-negative values, e.g. "+12%" or "-8%".
func FormatSignedPercent(pct int) string {
	if pct >= 0 {
		return fmt.Sprintf("+%d%%", pct)
	}
	return fmt.Sprintf("%d%%", pct)
}

// ParseDay parses a calendar date in the dataset's YYYY-MM-DD layout, falling
// back to RFC3339 for records that carry a full timestamp.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(DateFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// WeekdayLabel derives the short weekday name ("Mon", "Tue", ...) from a
// dataset date string. Unparsable dates fall back to the raw string so a bad
// record degrades a label rather than the chart.
func WeekdayLabel(date string) string {
	t, err := ParseDay(date)
	if err != nil {
		return date
	}
	return t.Format("Mon")
}

// LastN returns the trailing n elements of s, or all of s when shorter.
func LastN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
