package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgoAt(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		timestamp string
		want      string
	}{
		{"seconds ago", "2026-08-30T11:59:01Z", "just now"},
		{"just under a minute", "2026-08-30T11:59:00.5Z", "just now"},
		{"ninety seconds", "2026-08-30T11:58:30Z", "1 minute ago"},
		{"five minutes", "2026-08-30T11:55:00Z", "5 minutes ago"},
		{"just under an hour", "2026-08-30T11:00:30Z", "59 minutes ago"},
		{"one hour", "2026-08-30T10:30:00Z", "1 hour ago"},
		{"several hours", "2026-08-30T04:00:00Z", "8 hours ago"},
		{"one day", "2026-08-29T06:00:00Z", "1 day ago"},
		{"several days", "2026-08-27T12:00:00Z", "3 days ago"},
		{"one week", "2026-08-22T12:00:00Z", "1 week ago"},
		{"several weeks", "2026-08-02T11:00:00Z", "4 weeks ago"},
		{"empty timestamp", "", "unknown time"},
		{"unparsable timestamp", "yesterday-ish", "unknown time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timeAgoAt(tt.timestamp, now))
		})
	}
}

func TestParseTimestamp_Layouts(t *testing.T) {
	for _, timestamp := range []string{
		"2026-08-30T11:00:00Z",
		"2026-08-30T11:00:00.123456Z",
		"2026-08-30T11:00:00+02:00",
		"2026-08-30T11:00:00",
		"2026-08-30T11:00:00.123456",
		"2026-08-30 11:00:00",
		"  2026-08-30T11:00:00Z  ",
	} {
		_, err := parseTimestamp(timestamp)
		assert.NoError(t, err, "expected %q to parse", timestamp)
	}

	_, err := parseTimestamp("30/08/2026")
	assert.Error(t, err)
}
