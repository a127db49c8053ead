package handlers

import (
	"fmt"
	"time"
)

// parseDate accepts the two date shapes clients send: plain "YYYY-MM-DD"
// from the dashboards and full RFC3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
