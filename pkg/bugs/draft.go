package bugs

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinDescriptionLength is the shortest description the bot accepts
	MinDescriptionLength = 10

	// MaxTitleLength caps the derived title
	MaxTitleLength = 200
)

// skipTokens bypass an optional step entirely
var skipTokens = map[string]bool{
	"skip": true,
	"no":   true,
	"none": true,
}

// doneTokens finish the screenshot collection step
var doneTokens = map[string]bool{
	"skip":   true,
	"done":   true,
	"finish": true,
	"next":   true,
}

// IsSkipToken reports whether text asks to bypass an optional step
func IsSkipToken(text string) bool {
	return skipTokens[strings.ToLower(strings.TrimSpace(text))]
}

// IsDoneToken reports whether text finishes the screenshot step
func IsDoneToken(text string) bool {
	return doneTokens[strings.ToLower(strings.TrimSpace(text))]
}

// Draft is an in-progress, unsubmitted bug report. One draft exists
// per active conversation; it is consumed on submit or discarded on
// cancel. Never persisted.
type Draft struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Screenshots []Screenshot `json:"screenshots"`
	Environment Environment  `json:"environment,omitempty"`
	Priority    Priority     `json:"priority,omitempty"`
	ConsoleLogs string       `json:"console_logs,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Reporter    Reporter     `json:"reporter"`
}

// NewDraft creates an empty draft for the given reporter
func NewDraft(reporter Reporter) *Draft {
	return &Draft{
		Screenshots: []Screenshot{},
		Reporter:    reporter,
	}
}

// SetDescription validates and stores the description, deriving the
// title from its first MaxTitleLength characters
func (d *Draft) SetDescription(text string) error {
	description := strings.TrimSpace(text)
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return fmt.Errorf("description must be at least %d characters", MinDescriptionLength)
	}

	title := description
	if runes := []rune(title); len(runes) > MaxTitleLength {
		title = string(runes[:MaxTitleLength])
	}

	d.Title = title
	d.Description = description
	return nil
}

// AddScreenshot appends one screenshot reference
func (d *Draft) AddScreenshot(shot Screenshot) {
	d.Screenshots = append(d.Screenshots, shot)
}

// SetConsoleLogs stores console logs verbatim
func (d *Draft) SetConsoleLogs(text string) {
	d.ConsoleLogs = strings.TrimSpace(text)
}

// SetTags parses and stores comma-separated tags
func (d *Draft) SetTags(text string) {
	d.Tags = ParseTags(text)
}

// ParseTags splits comma-separated input into trimmed, non-empty tags
func ParseTags(text string) []string {
	parts := strings.Split(text, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Validate checks the fields the backend requires before submission
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if d.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if d.Priority == "" {
		return fmt.Errorf("priority is required")
	}
	return nil
}
