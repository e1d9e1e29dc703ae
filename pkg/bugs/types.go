// Package bugs defines the bug-report domain model shared by the
// conversation flow and the backend client. Status, priority, and
// environment values are parsed at the boundary; raw strings are never
// carried past it.
package bugs

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle state of a bug in the backend
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFixed      Status = "FIXED"
	StatusClosed     Status = "CLOSED"
)

// ValidStatuses lists every status the bot accepts for /status updates
var ValidStatuses = []Status{StatusOpen, StatusInProgress, StatusFixed, StatusClosed}

// ParseStatus parses a status value case-insensitively, rejecting
// anything outside the closed set
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range ValidStatuses {
		if candidate == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid status %q: must be one of %s", raw, joinValues(ValidStatuses))
}

// Priority represents how critical a bug is
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// ValidPriorities lists every priority a report may carry
var ValidPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// ParsePriority parses a priority value, rejecting unknown values
func ParsePriority(raw string) (Priority, error) {
	candidate := Priority(strings.ToUpper(strings.TrimSpace(raw)))
	for _, p := range ValidPriorities {
		if candidate == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid priority %q: must be one of %s", raw, joinValues(ValidPriorities))
}

// Environment represents where a bug was observed
type Environment string

const (
	EnvironmentDev  Environment = "DEV"
	EnvironmentProd Environment = "PROD"
)

// ValidEnvironments lists the environments a report may target
var ValidEnvironments = []Environment{EnvironmentDev, EnvironmentProd}

// ParseEnvironment parses an environment value, rejecting unknown values
func ParseEnvironment(raw string) (Environment, error) {
	candidate := Environment(strings.ToUpper(strings.TrimSpace(raw)))
	for _, e := range ValidEnvironments {
		if candidate == e {
			return e, nil
		}
	}
	return "", fmt.Errorf("invalid environment %q: must be one of %s", raw, joinValues(ValidEnvironments))
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// Reporter identifies the Telegram user who filed a bug
type Reporter struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
}

// Screenshot holds the metadata of one attached screenshot. The image
// bytes stay with Telegram; only the file reference travels to the
// backend.
type Screenshot struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	FileSize     int    `json:"file_size"`
}

// Note is a backend-authored comment on a bug
type Note struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Bug is a backend-owned bug record. The bot never mutates one
// directly; it sends mutation requests and displays what comes back.
type Bug struct {
	ID          string       `json:"id,omitempty"`
	BugID       string       `json:"bug_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	Environment string       `json:"environment"`
	CreatedAt   string       `json:"created_at,omitempty"`
	UpdatedAt   string       `json:"updated_at,omitempty"`
	FixedAt     string       `json:"fixed_at,omitempty"`
	ConsoleLogs string       `json:"console_logs,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Screenshots []Screenshot `json:"screenshots,omitempty"`
	Assignee    string       `json:"assignee,omitempty"`
	GithubPR    string       `json:"github_pr,omitempty"`
	Reporter    Reporter     `json:"reporter,omitempty"`
	Notes       []Note       `json:"notes,omitempty"`
}

// Key returns the identifier to show users, preferring the backend's
// human-readable bug_id over the raw id
func (b *Bug) Key() string {
	if b.BugID != "" {
		return b.BugID
	}
	if b.ID != "" {
		return b.ID
	}
	return "UNKNOWN"
}

// Stats is the aggregate breakdown returned by GET /bugs/stats
type Stats struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status"`
	ByPriority    map[string]int `json:"by_priority"`
	ByEnvironment map[string]int `json:"by_environment"`
}
