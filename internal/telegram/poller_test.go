package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *tgbotapi.User {
	return &tgbotapi.User{
		ID:        42,
		UserName:  "tester",
		FirstName: "Test",
		LastName:  "User",
	}
}

func commandMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: testUser(),
		Chat: &tgbotapi.Chat{ID: 4242},
		Text: text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(firstWord(text))},
		},
	}
}

func firstWord(text string) string {
	for i, r := range text {
		if r == ' ' {
			return text[:i]
		}
	}
	return text
}

func TestTranslateMessage_Command(t *testing.T) {
	ev := translateMessage(commandMessage("/status BUG-001 FIXED"))

	require.NotNil(t, ev)
	assert.Equal(t, int64(42), ev.UserID)
	assert.Equal(t, int64(4242), ev.ChatID)
	assert.Equal(t, "tester", ev.Username)
	assert.Equal(t, "status", ev.Command)
	assert.Equal(t, []string{"BUG-001", "FIXED"}, ev.Args)
	assert.Empty(t, ev.Text)
}

func TestTranslateMessage_CommandWithoutArgs(t *testing.T) {
	ev := translateMessage(commandMessage("/mybugs"))

	require.NotNil(t, ev)
	assert.Equal(t, "mybugs", ev.Command)
	assert.Nil(t, ev.Args)
}

func TestTranslateMessage_PlainText(t *testing.T) {
	ev := translateMessage(&tgbotapi.Message{
		From: testUser(),
		Chat: &tgbotapi.Chat{ID: 4242},
		Text: "The save button does nothing",
	})

	require.NotNil(t, ev)
	assert.Empty(t, ev.Command)
	assert.Equal(t, "The save button does nothing", ev.Text)
	assert.Nil(t, ev.Photo)
}

func TestTranslateMessage_PhotoPicksLargestRendition(t *testing.T) {
	ev := translateMessage(&tgbotapi.Message{
		From: testUser(),
		Chat: &tgbotapi.Chat{ID: 4242},
		Photo: []tgbotapi.PhotoSize{
			{FileID: "small", Width: 90, Height: 51, FileSize: 1200},
			{FileID: "medium", Width: 320, Height: 180, FileSize: 9800},
			{FileID: "large", Width: 1280, Height: 720, FileSize: 88000},
		},
	})

	require.NotNil(t, ev)
	require.NotNil(t, ev.Photo)
	assert.Equal(t, "large", ev.Photo.FileID)
	assert.Equal(t, 1280, ev.Photo.Width)
	assert.Equal(t, 88000, ev.Photo.FileSize)
}

func TestTranslateMessage_IgnoresNonActionable(t *testing.T) {
	// No sender
	assert.Nil(t, translateMessage(&tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "hi"}))

	// No text and no photo (stickers, voice notes, ...)
	assert.Nil(t, translateMessage(&tgbotapi.Message{From: testUser(), Chat: &tgbotapi.Chat{ID: 1}}))
}

func TestTranslateCallback(t *testing.T) {
	ev := translateCallback(&tgbotapi.CallbackQuery{
		ID:      "cb-1",
		From:    testUser(),
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 4242}},
		Data:    "priority_HIGH",
	})

	require.NotNil(t, ev)
	assert.Equal(t, "cb-1", ev.CallbackID)
	require.NotNil(t, ev.Choice)
	assert.Equal(t, "priority", ev.Choice.Kind)
	assert.Equal(t, "HIGH", ev.Choice.Value)
}

func TestTranslateCallback_ConfirmAction(t *testing.T) {
	ev := translateCallback(&tgbotapi.CallbackQuery{
		ID:      "cb-2",
		From:    testUser(),
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 4242}},
		Data:    "confirm_submit",
	})

	require.NotNil(t, ev)
	assert.Equal(t, "confirm", ev.Choice.Kind)
	assert.Equal(t, "submit", ev.Choice.Value)
}

func TestTranslateCallback_Malformed(t *testing.T) {
	assert.Nil(t, translateCallback(&tgbotapi.CallbackQuery{
		ID:      "cb-3",
		From:    testUser(),
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 4242}},
		Data:    "nounderscore",
	}))
}

func TestTranslateUpdate(t *testing.T) {
	// Edits and channel posts are not handled
	assert.Nil(t, translateUpdate(tgbotapi.Update{EditedMessage: commandMessage("/bug")}))
	assert.Nil(t, translateUpdate(tgbotapi.Update{}))

	ev := translateUpdate(tgbotapi.Update{Message: commandMessage("/help")})
	require.NotNil(t, ev)
	assert.Equal(t, "help", ev.Command)
}
