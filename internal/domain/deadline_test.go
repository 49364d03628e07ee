package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeadline(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-02T03:04:05Z", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2025-01-02T03:04:05.250Z", time.Date(2025, 1, 2, 3, 4, 5, 250_000_000, time.UTC)},
		{"2025-01-02T10:04:05+07:00", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2025-01-02T03:04:05", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2025-01-02 03:04:05", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2025-01-02T03:04", time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)},
		{" 2025-01-02 ", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, err := ParseDeadline(tc.in)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), "ParseDeadline(%q) = %s; want %s", tc.in, got, tc.want)
		assert.Equal(t, time.UTC, got.Location())
	}
}

func TestParseDeadlineRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "tomorrow", "2025-13-01", "02/01/2025"} {
		_, err := ParseDeadline(in)
		assert.Error(t, err, in)
	}
}
