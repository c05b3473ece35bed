package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-07T09:00:00Z", time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC)},
		{"2025-01-07T09:00:00", time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC)},
		{"2025-01-07T09:00", time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC)},
		{"2025-01-07 09:00:00", time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC)},
		{"2025-01-07T09:00:00.250", time.Date(2025, 1, 7, 9, 0, 0, 250_000_000, time.UTC)},
		{"2025-01-07", time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)},
		{"2025-01-07T09:00:00-05:00", time.Date(2025, 1, 7, 14, 0, 0, 0, time.UTC)},
		{" 2025-01-07T09:00:00+02:00 ", time.Date(2025, 1, 7, 7, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	for _, bad := range []string{"", "tomorrow", "2025-13-01", "07/01/2025"} {
		_, err := ParseTimestamp(bad)
		require.ErrorIs(t, err, ErrInvalidTime, bad)
	}
}
