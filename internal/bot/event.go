// Package bot contains the chat-platform-independent core of the bug
// reporting bot: the authorization gate, the per-user conversation
// state machine, and the one-shot command dispatchers. The transport
// adapter translates platform updates into Events and implements
// Sender; nothing in this package knows about the Telegram protocol.
package bot

import (
	"context"

	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/bugs"
)

// Event is one inbound chat event, already translated at the
// transport boundary
type Event struct {
	UserID    int64
	ChatID    int64
	Username  string
	FirstName string
	LastName  string

	// Command is set (without the leading slash) for command events
	Command string
	Args    []string

	// Text is the message text for plain replies
	Text string

	// Photo carries screenshot metadata when the reply is an image
	Photo *bugs.Screenshot

	// Choice is set for structured button presses
	Choice *Choice

	// CallbackID identifies the callback for acks and alerts
	CallbackID string
}

// IsCallback reports whether the event arrived as a button press
func (e *Event) IsCallback() bool {
	return e.Choice != nil
}

// Reporter builds the reporter identity from the event
func (e *Event) Reporter() bugs.Reporter {
	return bugs.Reporter{
		TelegramID: e.UserID,
		Username:   e.Username,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
	}
}

// Choice is a discriminated button press: the transport decodes the
// platform's callback-data string into {Kind, Value} so the state
// machine never string-splits
type Choice struct {
	Kind  string // "env", "priority", "confirm"
	Value string
}

// Button is one inline keyboard button
type Button struct {
	Label string
	Data  string
}

// Keyboard is a small structured choice widget, rows of buttons
type Keyboard [][]Button

// Sender is the outbound half of the chat surface
type Sender interface {
	// SendMessage sends a plain (lightly marked up) text message
	SendMessage(ctx context.Context, chatID int64, text string) error

	// SendKeyboard sends a message with an inline choice widget
	SendKeyboard(ctx context.Context, chatID int64, text string, keyboard Keyboard) error

	// SendPlaceholder sends a transient "working on it" message and
	// returns its ID for later editing
	SendPlaceholder(ctx context.Context, chatID int64, text string) (int, error)

	// EditMessage replaces the text of a previously sent message
	EditMessage(ctx context.Context, chatID int64, messageID int, text string) error

	// AnswerCallback acks a button press, optionally with an alert
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
}
