package format

import "strings"

var priorityEmojis = map[string]string{
	"LOW":      "🟢",
	"MEDIUM":   "🟡",
	"HIGH":     "🔴",
	"CRITICAL": "💀",
}

var environmentEmojis = map[string]string{
	"DEV":  "🔧",
	"PROD": "🚀",
}

var statusEmojis = map[string]string{
	"OPEN":        "🐛",
	"IN_PROGRESS": "🔧",
	"FIXED":       "✅",
	"CLOSED":      "📦",
	"WONTFIX":     "🚫",
	"DUPLICATE":   "👯",
}

// PriorityEmoji returns the emoji for a priority level
func PriorityEmoji(priority string) string {
	if emoji, ok := priorityEmojis[strings.ToUpper(priority)]; ok {
		return emoji
	}
	return "⚪️"
}

// EnvironmentEmoji returns the emoji for an environment
func EnvironmentEmoji(environment string) string {
	if emoji, ok := environmentEmojis[strings.ToUpper(environment)]; ok {
		return emoji
	}
	return "❓"
}

// StatusEmoji returns the emoji for a bug status
func StatusEmoji(status string) string {
	if emoji, ok := statusEmojis[strings.ToUpper(status)]; ok {
		return emoji
	}
	return "❓"
}
