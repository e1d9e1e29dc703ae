// Package telegram adapts the Telegram Bot API to the transport-neutral
// surface the bot core expects: updates become bot.Events, and outbound
// messages go through a Sender backed by the Bot API client.
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vitaliiserbynassisterr/bug-report-bot/internal/bot"
)

// Sender sends messages through the Telegram Bot API
type Sender struct {
	api *tgbotapi.BotAPI
}

// NewSender creates a Sender for an authorized Bot API client
func NewSender(api *tgbotapi.BotAPI) *Sender {
	return &Sender{api: api}
}

// SendMessage sends a Markdown-formatted text message
func (s *Sender) SendMessage(_ context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := s.api.Send(msg)
	return err
}

// SendKeyboard sends a message with inline choice buttons attached
func (s *Sender) SendKeyboard(_ context.Context, chatID int64, text string, keyboard bot.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = inlineKeyboard(keyboard)
	_, err := s.api.Send(msg)
	return err
}

// SendPlaceholder sends a transient status message and returns its ID
// so the final result can replace it in place
func (s *Sender) SendPlaceholder(_ context.Context, chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := s.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// EditMessage replaces the text of a previously sent message
func (s *Sender) EditMessage(_ context.Context, chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	_, err := s.api.Send(edit)
	return err
}

// AnswerCallback acks a button press. With alert set the text pops up
// as a modal instead of a toast.
func (s *Sender) AnswerCallback(_ context.Context, callbackID, text string, alert bool) error {
	callback := tgbotapi.CallbackConfig{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	}
	_, err := s.api.Request(callback)
	return err
}

func inlineKeyboard(keyboard bot.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
