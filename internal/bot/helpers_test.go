package bot

import (
	"context"
	"strings"
	"sync"

	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/backend"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/bugs"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/config"
)

// RecordingSender implements Sender and records everything sent
type RecordingSender struct {
	mu sync.Mutex

	Messages     []string
	KeyboardMsgs []string
	Keyboards    []Keyboard
	Placeholders []string
	Edits        []string
	Callbacks    []RecordedCallback

	nextMessageID int
}

// RecordedCallback captures one AnswerCallback invocation
type RecordedCallback struct {
	CallbackID string
	Text       string
	Alert      bool
}

func NewRecordingSender() *RecordingSender {
	return &RecordingSender{}
}

func (r *RecordingSender) SendMessage(_ context.Context, _ int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, text)
	return nil
}

func (r *RecordingSender) SendKeyboard(_ context.Context, _ int64, text string, keyboard Keyboard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.KeyboardMsgs = append(r.KeyboardMsgs, text)
	r.Keyboards = append(r.Keyboards, keyboard)
	return nil
}

func (r *RecordingSender) SendPlaceholder(_ context.Context, _ int64, text string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Placeholders = append(r.Placeholders, text)
	r.nextMessageID++
	return r.nextMessageID, nil
}

func (r *RecordingSender) EditMessage(_ context.Context, _ int64, _ int, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Edits = append(r.Edits, text)
	return nil
}

func (r *RecordingSender) AnswerCallback(_ context.Context, callbackID, text string, alert bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Callbacks = append(r.Callbacks, RecordedCallback{CallbackID: callbackID, Text: text, Alert: alert})
	return nil
}

// AllText joins everything user-visible for Contains assertions
func (r *RecordingSender) AllText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := append([]string{}, r.Messages...)
	all = append(all, r.KeyboardMsgs...)
	all = append(all, r.Edits...)
	return strings.Join(all, "\n---\n")
}

// LastMessage returns the most recent plain message
func (r *RecordingSender) LastMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1]
}

// LastEdit returns the most recent placeholder edit
func (r *RecordingSender) LastEdit() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Edits) == 0 {
		return ""
	}
	return r.Edits[len(r.Edits)-1]
}

const (
	allowedUser   int64 = 42
	forbiddenUser int64 = 666
	testChat      int64 = 4242
)

func testBotConfig() *config.Config {
	return &config.Config{
		TelegramBotToken:     "token",
		BackendAPIURL:        "https://backend.test",
		BackendInternalToken: "secret",
		AllowedUserIDs:       []int64{allowedUser},
	}
}

func newTestBot(client backend.Client, opts Options) (*Bot, *RecordingSender) {
	sender := NewRecordingSender()
	return New(testBotConfig(), client, sender, opts), sender
}

func commandEvent(userID int64, command string, args ...string) *Event {
	return &Event{
		UserID:    userID,
		ChatID:    testChat,
		Username:  "tester",
		FirstName: "Test",
		Command:   command,
		Args:      args,
	}
}

func textEvent(userID int64, text string) *Event {
	return &Event{UserID: userID, ChatID: testChat, Username: "tester", Text: text}
}

func photoEvent(userID int64, fileID string) *Event {
	return &Event{
		UserID: userID,
		ChatID: testChat,
		Photo:  &bugs.Screenshot{FileID: fileID, Width: 1280, Height: 720},
	}
}

func choiceEvent(userID int64, kind, value string) *Event {
	return &Event{
		UserID:     userID,
		ChatID:     testChat,
		Choice:     &Choice{Kind: kind, Value: value},
		CallbackID: "cb-" + kind + "-" + value,
	}
}
