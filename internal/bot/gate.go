package bot

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vitaliiserbynassisterr/bug-report-bot/internal/metrics"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/config"
)

const deniedMessage = "⛔️ Sorry, you're not authorized to use this bot.\n\n" +
	"This bot is restricted to specific users only. " +
	"If you believe you should have access, please contact the administrator."

const deniedAlert = "You're not authorized to use this bot."

// Gate enforces the allow-list before any command or conversation
// entry point runs
type Gate struct {
	cfg     *config.Config
	sender  Sender
	metrics *metrics.Metrics
}

// NewGate creates an authorization gate over the configured allow-list
func NewGate(cfg *config.Config, sender Sender, m *metrics.Metrics) *Gate {
	return &Gate{cfg: cfg, sender: sender, metrics: m}
}

// Authorize checks the allow-list. On rejection it notifies the user
// through whichever channel the event arrived on and logs the attempt.
func (g *Gate) Authorize(ctx context.Context, ev *Event) bool {
	if g.cfg.IsUserAllowed(ev.UserID) {
		log.WithFields(log.Fields{
			"user_id":  ev.UserID,
			"username": ev.Username,
		}).Info("Authorized user accessed the bot")
		return true
	}

	log.WithFields(log.Fields{
		"user_id":  ev.UserID,
		"username": ev.Username,
	}).Warn("Unauthorized access attempt")

	if g.metrics != nil {
		g.metrics.UnauthorizedTotal.Inc()
	}

	if ev.IsCallback() {
		if err := g.sender.AnswerCallback(ctx, ev.CallbackID, deniedAlert, true); err != nil {
			log.WithError(err).Error("Failed to send denial alert")
		}
	} else {
		if err := g.sender.SendMessage(ctx, ev.ChatID, deniedMessage); err != nil {
			log.WithError(err).Error("Failed to send denial message")
		}
	}

	return false
}
