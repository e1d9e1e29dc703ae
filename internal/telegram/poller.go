package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vitaliiserbynassisterr/bug-report-bot/internal/bot"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/bugs"
)

const pollTimeoutSeconds = 30

// Handler consumes translated chat events
type Handler interface {
	HandleEvent(ctx context.Context, ev *bot.Event)
}

// Poller long-polls the Telegram Bot API and feeds translated events to
// a Handler. Each event is handled in its own goroutine; per-user
// ordering is the handler's concern.
type Poller struct {
	api     *tgbotapi.BotAPI
	handler Handler
}

// NewPoller creates a Poller for an authorized Bot API client
func NewPoller(api *tgbotapi.BotAPI, handler Handler) *Poller {
	return &Poller{api: api, handler: handler}
}

// Run polls for updates until the context is canceled
func (p *Poller) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeoutSeconds

	updates := p.api.GetUpdatesChan(updateConfig)

	log.WithField("bot_username", p.api.Self.UserName).Info("Telegram poller started")

	for {
		select {
		case <-ctx.Done():
			p.api.StopReceivingUpdates()
			log.Info("Telegram poller stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			ev := translateUpdate(update)
			if ev == nil {
				continue
			}
			go p.handler.HandleEvent(ctx, ev)
		}
	}
}

// translateUpdate maps a raw Telegram update onto a bot.Event. Updates
// the bot does not act on (edits, channel posts, non-photo media)
// translate to nil.
func translateUpdate(update tgbotapi.Update) *bot.Event {
	if update.CallbackQuery != nil {
		return translateCallback(update.CallbackQuery)
	}
	if update.Message != nil {
		return translateMessage(update.Message)
	}
	return nil
}

func translateMessage(message *tgbotapi.Message) *bot.Event {
	if message.From == nil {
		return nil
	}

	ev := &bot.Event{
		UserID:    message.From.ID,
		ChatID:    message.Chat.ID,
		Username:  message.From.UserName,
		FirstName: message.From.FirstName,
		LastName:  message.From.LastName,
	}

	if message.IsCommand() {
		ev.Command = message.Command()
		if args := strings.Fields(message.CommandArguments()); len(args) > 0 {
			ev.Args = args
		}
		return ev
	}

	if len(message.Photo) > 0 {
		// Telegram lists renditions smallest first
		largest := message.Photo[len(message.Photo)-1]
		ev.Photo = &bugs.Screenshot{
			FileID:       largest.FileID,
			FileUniqueID: largest.FileUniqueID,
			Width:        largest.Width,
			Height:       largest.Height,
			FileSize:     largest.FileSize,
		}
		return ev
	}

	if message.Text == "" {
		return nil
	}
	ev.Text = message.Text
	return ev
}

func translateCallback(callback *tgbotapi.CallbackQuery) *bot.Event {
	if callback.From == nil || callback.Message == nil {
		return nil
	}

	kind, value, found := strings.Cut(callback.Data, "_")
	if !found {
		log.WithField("data", callback.Data).Warn("Ignoring malformed callback data")
		return nil
	}

	return &bot.Event{
		UserID:     callback.From.ID,
		ChatID:     callback.Message.Chat.ID,
		Username:   callback.From.UserName,
		FirstName:  callback.From.FirstName,
		LastName:   callback.From.LastName,
		Choice:     &bot.Choice{Kind: kind, Value: value},
		CallbackID: callback.ID,
	}
}
