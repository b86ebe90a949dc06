package utils

import (
	"fmt"
	"strings"
	"time"
)

const dateOnly = "2006-01-02"

// ParseTimeBound reads one end of a time window from a query value. A full
// RFC3339 timestamp is taken as is. A bare YYYY-MM-DD is the first instant of
// that day, or its last instant when upper is true, so a date-only window
// includes both days.
func ParseTimeBound(raw string, upper bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC3339 or YYYY-MM-DD, got %q", raw)
	}
	if upper {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}
