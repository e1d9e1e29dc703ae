package bot

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vitaliiserbynassisterr/bug-report-bot/internal/metrics"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/backend"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/config"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/tags"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/triage"
)

// Options carries the optional collaborators of the bot
type Options struct {
	// Classifier enables AI triage of freshly filed bugs when set
	Classifier triage.Classifier

	// Catalog enables tag suggestions during the report flow when set
	Catalog *tags.Catalog

	// Metrics enables prometheus counters when set
	Metrics *metrics.Metrics
}

// Bot routes inbound events: commands to the one-shot dispatchers,
// replies and button presses to the conversation state machine. Every
// entry point runs the authorization gate first.
type Bot struct {
	cfg        *config.Config
	client     backend.Client
	sender     Sender
	gate       *Gate
	sessions   *SessionStore
	classifier triage.Classifier
	catalog    *tags.Catalog
	metrics    *metrics.Metrics
}

// New creates a bot over the given backend client and outbound sender
func New(cfg *config.Config, client backend.Client, sender Sender, opts Options) *Bot {
	return &Bot{
		cfg:        cfg,
		client:     client,
		sender:     sender,
		gate:       NewGate(cfg, sender, opts.Metrics),
		sessions:   NewSessionStore(cfg.SessionTTL),
		classifier: opts.Classifier,
		catalog:    opts.Catalog,
		metrics:    opts.Metrics,
	}
}

// Sessions exposes the session store so the host can run the sweeper
func (b *Bot) Sessions() *SessionStore {
	return b.sessions
}

// HandleEvent processes one inbound event. Events for the same user
// are serialized; events for different users run concurrently.
func (b *Bot) HandleEvent(ctx context.Context, ev *Event) {
	lock := b.sessions.UserLock(ev.UserID)
	lock.Lock()
	defer lock.Unlock()

	if !b.gate.Authorize(ctx, ev) {
		return
	}

	switch {
	case ev.Command != "":
		b.handleCommand(ctx, ev)
	case ev.IsCallback():
		b.handleChoice(ctx, ev)
	default:
		b.handleReply(ctx, ev)
	}
}

func (b *Bot) handleCommand(ctx context.Context, ev *Event) {
	log.WithFields(log.Fields{
		"user_id": ev.UserID,
		"command": ev.Command,
	}).Info("Handling command")

	if b.metrics != nil {
		b.metrics.CommandsTotal.WithLabelValues(ev.Command).Inc()
	}

	switch ev.Command {
	case "start":
		b.startCommand(ctx, ev)
	case "help":
		b.helpCommand(ctx, ev)
	case "bug":
		b.startReport(ctx, ev)
	case "mybugs":
		b.myBugsCommand(ctx, ev)
	case "view":
		b.viewCommand(ctx, ev)
	case "status":
		b.statusCommand(ctx, ev)
	case "stats":
		b.statsCommand(ctx, ev)
	case "cancel":
		b.cancelCommand(ctx, ev)
	default:
		b.send(ctx, ev.ChatID, "🤔 Unknown command. Use /help to see what I can do.")
	}
}

// send is a fire-and-forget message helper; delivery failures are
// logged, never propagated into the conversation
func (b *Bot) send(ctx context.Context, chatID int64, text string) {
	if err := b.sender.SendMessage(ctx, chatID, text); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

func (b *Bot) sendKeyboard(ctx context.Context, chatID int64, text string, keyboard Keyboard) {
	if err := b.sender.SendKeyboard(ctx, chatID, text, keyboard); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Failed to send keyboard")
	}
}

func (b *Bot) ackCallback(ctx context.Context, ev *Event) {
	if ev.CallbackID == "" {
		return
	}
	if err := b.sender.AnswerCallback(ctx, ev.CallbackID, "", false); err != nil {
		log.WithError(err).Warn("Failed to ack callback")
	}
}

// editOrSend replaces a placeholder message, falling back to a fresh
// message when the edit fails
func (b *Bot) editOrSend(ctx context.Context, chatID int64, messageID int, text string) {
	if messageID != 0 {
		if err := b.sender.EditMessage(ctx, chatID, messageID, text); err == nil {
			return
		} else {
			log.WithError(err).Warn("Failed to edit placeholder message")
		}
	}
	b.send(ctx, chatID, text)
}

// userErrorText turns a backend failure into the message shown to the
// user: the normalized backend message, never a stack trace
func userErrorText(err error) string {
	var backendErr *backend.BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Message
	}
	return "unexpected error, please try again later"
}

func notFoundMessage(bugID string) string {
	return fmt.Sprintf("❌ **Bug not found**\n\nBug `%s` doesn't exist.\nUse /mybugs to see your bugs.", bugID)
}

func failureMessage(action string, err error) string {
	return fmt.Sprintf("❌ **Failed to %s**\n\nError: %s\n\nPlease try again later or contact support.", action, userErrorText(err))
}
