// Package format renders backend records and drafts into user-facing
// Telegram messages. Every function is a pure, deterministic mapping
// with no side effects.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/backend"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/bugs"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/triage"
)

const (
	consoleLogPreviewLength = 200
	notePreviewLength       = 100
	maxNotesShown           = 3
)

// BugSummary renders a draft for confirmation before submission
func BugSummary(draft *bugs.Draft) string {
	var b strings.Builder

	b.WriteString("📋 **Bug Report Summary:**\n\n")
	fmt.Fprintf(&b, "**Title:** %s\n", valueOr(draft.Title, "N/A"))
	fmt.Fprintf(&b, "**Environment:** %s %s\n", EnvironmentEmoji(string(draft.Environment)), valueOr(string(draft.Environment), "N/A"))
	fmt.Fprintf(&b, "**Priority:** %s %s\n", PriorityEmoji(string(draft.Priority)), valueOr(string(draft.Priority), "N/A"))

	if count := len(draft.Screenshots); count > 0 {
		fmt.Fprintf(&b, "**Screenshots:** %d attached\n", count)
	} else {
		b.WriteString("**Screenshots:** None\n")
	}

	if draft.ConsoleLogs != "" {
		b.WriteString("**Console Logs:** Yes\n")
	} else {
		b.WriteString("**Console Logs:** None\n")
	}

	if len(draft.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n", strings.Join(draft.Tags, ", "))
	} else {
		b.WriteString("**Tags:** None\n")
	}

	b.WriteString("\nLooks good?")
	return b.String()
}

// BugCreated renders the success message after a bug is filed
func BugCreated(response *backend.CreateBugResponse) string {
	var b strings.Builder

	b.WriteString("✅ **Bug created successfully!**\n\n")
	fmt.Fprintf(&b, "**Bug ID:** %s\n", response.Key())
	fmt.Fprintf(&b, "**Status:** %s\n\n", response.CreatedStatus())
	b.WriteString("You'll be notified when this bug is fixed.\n")
	b.WriteString("Use /mybugs to see all your reports.")

	return b.String()
}

// TriageResult renders the AI triage verdict appended to a success message
func TriageResult(eval *triage.Evaluation) string {
	if triage.ShouldAutoFix(eval) {
		return fmt.Sprintf(
			"\n\n🤖 **AI Triage:** %s (confidence %.0f%%)\nThis bug has been queued for an automated fix attempt.",
			eval.Complexity, eval.Confidence*100)
	}
	return fmt.Sprintf("\n\n🤖 **AI Triage:** %s (confidence %.0f%%)", eval.Complexity, eval.Confidence*100)
}

// BugList renders a numbered digest of the user's bugs
func BugList(list []bugs.Bug) string {
	if len(list) == 0 {
		return "📭 You haven't reported any bugs yet.\n\nUse /bug to create your first bug report!"
	}

	var b strings.Builder
	b.WriteString("🐛 **Your Recent Bugs:**\n\n")

	for i, bug := range list {
		status := valueOr(bug.Status, "UNKNOWN")
		fmt.Fprintf(&b, "%d. **%s** %s [%s]\n", i+1, bug.Key(), PriorityEmoji(bug.Priority), status)
		fmt.Fprintf(&b, "   %s\n", valueOr(bug.Title, "Untitled"))
		fmt.Fprintf(&b, "   %s %s • %s\n", EnvironmentEmoji(bug.Environment), valueOr(bug.Environment, "UNKNOWN"), TimeAgo(bug.CreatedAt))

		switch strings.ToUpper(status) {
		case "FIXED", "CLOSED":
			b.WriteString("   ✅\n")
		}

		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// StatsBreakdown renders the aggregate statistics grouped by status,
// priority, and environment
func StatsBreakdown(stats *bugs.Stats) string {
	var b strings.Builder

	b.WriteString("📊 **Bug Statistics:**\n\n")
	fmt.Fprintf(&b, "**Total Bugs:** %d\n\n", stats.Total)

	if len(stats.ByStatus) > 0 {
		b.WriteString("**By Status:**\n")
		for _, key := range sortedKeys(stats.ByStatus) {
			fmt.Fprintf(&b, "  %s %s: %d\n", StatusEmoji(key), escapeMarkdown(key), stats.ByStatus[key])
		}
		b.WriteString("\n")
	}

	if len(stats.ByPriority) > 0 {
		b.WriteString("**By Priority:**\n")
		for _, key := range sortedKeys(stats.ByPriority) {
			fmt.Fprintf(&b, "  %s %s: %d\n", PriorityEmoji(key), escapeMarkdown(key), stats.ByPriority[key])
		}
		b.WriteString("\n")
	}

	if len(stats.ByEnvironment) > 0 {
		b.WriteString("**By Environment:**\n")
		for _, key := range sortedKeys(stats.ByEnvironment) {
			fmt.Fprintf(&b, "  %s %s: %d\n", EnvironmentEmoji(key), escapeMarkdown(key), stats.ByEnvironment[key])
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// BugDetails renders the full detail view of one bug
func BugDetails(bug *bugs.Bug) string {
	var b strings.Builder

	b.WriteString("🐛 **Bug Details**\n\n")
	fmt.Fprintf(&b, "**ID:** %s\n", bug.Key())
	fmt.Fprintf(&b, "**Title:** %s\n\n", valueOr(bug.Title, "Untitled"))
	fmt.Fprintf(&b, "**Description:**\n%s\n\n", valueOr(bug.Description, "No description"))
	fmt.Fprintf(&b, "**Status:** %s %s\n", StatusEmoji(bug.Status), valueOr(bug.Status, "UNKNOWN"))
	fmt.Fprintf(&b, "**Priority:** %s %s\n", PriorityEmoji(bug.Priority), valueOr(bug.Priority, "UNKNOWN"))
	fmt.Fprintf(&b, "**Environment:** %s %s\n\n", EnvironmentEmoji(bug.Environment), valueOr(bug.Environment, "UNKNOWN"))

	reporterName := valueOr(bug.Reporter.FirstName, "Unknown")
	if bug.Reporter.Username != "" {
		reporterName += fmt.Sprintf(" (@%s)", bug.Reporter.Username)
	}
	fmt.Fprintf(&b, "**Reported by:** %s\n", reporterName)

	if bug.CreatedAt != "" {
		fmt.Fprintf(&b, "**Created:** %s\n", TimeAgo(bug.CreatedAt))
	}
	if bug.UpdatedAt != "" {
		fmt.Fprintf(&b, "**Updated:** %s\n", TimeAgo(bug.UpdatedAt))
	}
	if bug.FixedAt != "" {
		fmt.Fprintf(&b, "**Fixed:** %s\n", TimeAgo(bug.FixedAt))
	}
	if bug.Assignee != "" {
		fmt.Fprintf(&b, "**Assignee:** %s\n", bug.Assignee)
	}
	if bug.GithubPR != "" {
		fmt.Fprintf(&b, "**GitHub PR:** %s\n", bug.GithubPR)
	}
	b.WriteString("\n")

	if len(bug.Screenshots) > 0 {
		fmt.Fprintf(&b, "**Screenshots:** %d attached\n", len(bug.Screenshots))
	}

	if bug.ConsoleLogs != "" {
		fmt.Fprintf(&b, "**Console Logs:**\n`%s`\n\n", truncate(bug.ConsoleLogs, consoleLogPreviewLength))
	}

	if len(bug.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(bug.Tags, ", "))
	}

	if len(bug.Notes) > 0 {
		fmt.Fprintf(&b, "**Notes (%d):**\n", len(bug.Notes))
		shown := bug.Notes
		if len(shown) > maxNotesShown {
			shown = shown[:maxNotesShown]
		}
		for i, note := range shown {
			when := ""
			if note.Timestamp != "" {
				when = TimeAgo(note.Timestamp)
			}
			fmt.Fprintf(&b, "%d. **%s** (%s):\n   %s\n", i+1, valueOr(note.Author, "Unknown"), when, truncate(note.Text, notePreviewLength))
		}
		if extra := len(bug.Notes) - maxNotesShown; extra > 0 {
			fmt.Fprintf(&b, "   ... and %d more notes\n", extra)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// StatusUpdated renders the success message after a /status update
func StatusUpdated(bugID string, status bugs.Status, response *backend.UpdateBugResponse) string {
	var b strings.Builder

	b.WriteString("✅ **Bug updated successfully!**\n\n")
	fmt.Fprintf(&b, "**Bug ID:** %s\n", bugID)
	fmt.Fprintf(&b, "**New Status:** %s\n", escapeMarkdown(string(status)))

	if status == bugs.StatusFixed && response.FixedTimestamp() != "" {
		b.WriteString("**Fixed At:** Just now\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// TagSuggestions renders suggested tags for the tags prompt
func TagSuggestions(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return "\n**Suggested for this bug:** " + strings.Join(labels, ", ") + "\n"
}

func truncate(text string, limit int) string {
	if runes := []rune(text); len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return text
}

// escapeMarkdown escapes underscores so enum names like IN_PROGRESS
// survive Telegram's Markdown parser
func escapeMarkdown(text string) string {
	return strings.ReplaceAll(text, "_", "\\_")
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	// Stable order so rendered stats are deterministic
	sort.Strings(keys)
	return keys
}
