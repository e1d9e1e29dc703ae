package format

import (
	"fmt"
	"strings"
	"time"
)

// TimeAgo renders an ISO-8601 timestamp as a relative time bucket.
// Unparsable timestamps render as "unknown time" rather than failing.
func TimeAgo(timestamp string) string {
	return timeAgoAt(timestamp, time.Now())
}

// timeAgoAt is the injectable form used by tests
func timeAgoAt(timestamp string, now time.Time) string {
	if timestamp == "" {
		return "unknown time"
	}

	parsed, err := parseTimestamp(timestamp)
	if err != nil {
		return "unknown time"
	}

	seconds := now.Sub(parsed).Seconds()
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return pluralize(int(seconds/60), "minute")
	case seconds < 86400:
		return pluralize(int(seconds/3600), "hour")
	case seconds < 604800:
		return pluralize(int(seconds/86400), "day")
	default:
		return pluralize(int(seconds/604800), "week")
	}
}

func parseTimestamp(timestamp string) (time.Time, error) {
	normalized := strings.TrimSpace(timestamp)

	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999999", // no zone: treat as local, matching the backend
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	} {
		if parsed, err := time.ParseInLocation(layout, normalized, time.Local); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparsable timestamp %q", timestamp)
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
