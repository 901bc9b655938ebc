package when

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAbsolute(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	// Zoneless absolute dates are read in local time, the same zone
	// listings display deletion times in
	tests := []struct {
		expr string
		want time.Time
	}{
		{"2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)},
		{"2024-06-01T12:30:45", time.Date(2024, 6, 1, 12, 30, 45, 0, time.Local)},
		{"2024-06-01 12:30:45", time.Date(2024, 6, 1, 12, 30, 45, 0, time.Local)},
		{"2024-06-01T12:30:45Z", time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Parse(tt.expr, now)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseRelative(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		expr string
		want time.Time
	}{
		{"2 days ago", now.Add(-48 * time.Hour)},
		{"2 days", now.Add(-48 * time.Hour)},
		{"1 week ago", now.Add(-7 * 24 * time.Hour)},
		{"12 hours ago", now.Add(-12 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Parse(tt.expr, now)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	now := time.Now()

	for _, expr := range []string{"", "   ", "whenever", "yesterday-ish"} {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr, now)
			assert.Error(t, err)
		})
	}
}
