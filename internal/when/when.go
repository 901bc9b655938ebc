// Package when turns date expressions into absolute points in time.
//
// Accepted forms are absolute dates ("2024-06-01", "2024-06-01T12:00:00")
// and relative expressions ("1 month ago", "2 weeks", "3 days ago"); a bare
// duration is read as that long before now. Absolute dates without a zone
// are read in local time, matching how listings display deletion times.
package when

import (
	"fmt"
	"strings"
	"time"

	"github.com/k1LoW/duration"
)

var layouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// Parse interprets expr relative to now and returns the resulting instant.
func Parse(expr string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date expression")
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	rel := strings.TrimSuffix(strings.ToLower(s), " ago")
	d, err := duration.Parse(rel)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date expression %q: %w", expr, err)
	}

	return now.Add(-d).UTC(), nil
}
