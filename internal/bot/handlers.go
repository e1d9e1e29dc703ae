package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vitaliiserbynassisterr/bug-report-bot/internal/format"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/backend"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/bugs"
)

const myBugsLimit = 10

// startCommand greets the user and lists the available commands
func (b *Bot) startCommand(ctx context.Context, ev *Event) {
	b.send(ctx, ev.ChatID, fmt.Sprintf(welcomeTemplate, displayName(ev)))
}

// helpCommand shows the detailed help text
func (b *Bot) helpCommand(ctx context.Context, ev *Event) {
	b.send(ctx, ev.ChatID, helpMessage)
}

// myBugsCommand lists the user's most recent reports
func (b *Bot) myBugsCommand(ctx context.Context, ev *Event) {
	placeholder, err := b.sender.SendPlaceholder(ctx, ev.ChatID, "⏳ Fetching your bug reports...")
	if err != nil {
		log.WithError(err).Warn("Failed to send placeholder")
	}

	list, err := b.client.ListUserBugs(ctx, ev.UserID, myBugsLimit)
	if err != nil {
		log.WithError(err).WithField("user_id", ev.UserID).Error("Failed to fetch user bugs")
		b.editOrSend(ctx, ev.ChatID, placeholder, failureMessage("fetch bug reports", err))
		return
	}

	log.WithFields(log.Fields{
		"user_id": ev.UserID,
		"count":   len(list),
	}).Info("Fetched user bugs")

	b.editOrSend(ctx, ev.ChatID, placeholder, format.BugList(list))
}

// viewCommand shows the full detail view of one bug
func (b *Bot) viewCommand(ctx context.Context, ev *Event) {
	if len(ev.Args) < 1 {
		b.send(ctx, ev.ChatID, usageView)
		return
	}

	bugID := strings.ToUpper(ev.Args[0])

	placeholder, err := b.sender.SendPlaceholder(ctx, ev.ChatID, fmt.Sprintf("⏳ Fetching bug %s...", bugID))
	if err != nil {
		log.WithError(err).Warn("Failed to send placeholder")
	}

	bug, err := b.client.GetBug(ctx, bugID)
	if err != nil {
		log.WithError(err).WithField("bug_id", bugID).Error("Failed to fetch bug")
		if backend.IsNotFound(err) {
			b.editOrSend(ctx, ev.ChatID, placeholder, notFoundMessage(bugID))
		} else {
			b.editOrSend(ctx, ev.ChatID, placeholder, failureMessage("fetch bug", err))
		}
		return
	}

	log.WithFields(log.Fields{
		"user_id": ev.UserID,
		"bug_id":  bugID,
	}).Info("User viewed bug")

	b.editOrSend(ctx, ev.ChatID, placeholder, format.BugDetails(bug))
}

// statusCommand updates a bug's status. The new value is validated
// against the closed status set before any network call.
func (b *Bot) statusCommand(ctx context.Context, ev *Event) {
	if len(ev.Args) < 2 {
		b.send(ctx, ev.ChatID, usageStatus)
		return
	}

	bugID := strings.ToUpper(ev.Args[0])

	newStatus, err := bugs.ParseStatus(ev.Args[1])
	if err != nil {
		b.send(ctx, ev.ChatID, fmt.Sprintf(
			"❌ **Invalid status:** `%s`\n\n**Valid statuses:**\n• OPEN\n• IN\\_PROGRESS\n• FIXED\n• CLOSED",
			strings.ToUpper(ev.Args[1])))
		return
	}

	placeholder, err := b.sender.SendPlaceholder(ctx, ev.ChatID, fmt.Sprintf("⏳ Updating %s to %s...", bugID, newStatus))
	if err != nil {
		log.WithError(err).Warn("Failed to send placeholder")
	}

	response, err := b.client.UpdateBugStatus(ctx, bugID, newStatus, "")
	if err != nil {
		log.WithError(err).WithField("bug_id", bugID).Error("Failed to update bug")
		if backend.IsNotFound(err) {
			b.editOrSend(ctx, ev.ChatID, placeholder, notFoundMessage(bugID))
		} else {
			b.editOrSend(ctx, ev.ChatID, placeholder, failureMessage("update bug", err))
		}
		return
	}

	log.WithFields(log.Fields{
		"user_id": ev.UserID,
		"bug_id":  bugID,
		"status":  newStatus,
	}).Info("User updated bug status")

	b.editOrSend(ctx, ev.ChatID, placeholder, format.StatusUpdated(bugID, newStatus, response))
}

// statsCommand shows the aggregate statistics
func (b *Bot) statsCommand(ctx context.Context, ev *Event) {
	placeholder, err := b.sender.SendPlaceholder(ctx, ev.ChatID, "⏳ Fetching statistics...")
	if err != nil {
		log.WithError(err).Warn("Failed to send placeholder")
	}

	stats, err := b.client.GetStats(ctx)
	if err != nil {
		log.WithError(err).WithField("user_id", ev.UserID).Error("Failed to fetch statistics")
		b.editOrSend(ctx, ev.ChatID, placeholder, failureMessage("fetch statistics", err))
		return
	}

	log.WithField("user_id", ev.UserID).Info("User fetched bug statistics")
	b.editOrSend(ctx, ev.ChatID, placeholder, format.StatsBreakdown(stats))
}

// displayName picks a friendly name for greetings
func displayName(ev *Event) string {
	if ev.FirstName != "" {
		return ev.FirstName
	}
	if ev.Username != "" {
		return "@" + ev.Username
	}
	return "User"
}
