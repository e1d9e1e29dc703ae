package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vitaliiserbynassisterr/bug-report-bot/internal/format"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/bugs"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/triage"
)

const maxTagSuggestions = 5

// startReport begins the report conversation, overwriting any draft
// already in progress for this user
func (b *Bot) startReport(ctx context.Context, ev *Event) {
	_, discarded := b.sessions.Start(ev.UserID, ev.Reporter())
	if discarded {
		b.send(ctx, ev.ChatID, msgDraftDiscarded)
	}

	b.send(ctx, ev.ChatID, promptDescription)
	log.WithField("user_id", ev.UserID).Info("User started bug report")
}

// handleReply routes a free-text or photo reply to the current
// conversation step. Replies outside a conversation are ignored.
func (b *Bot) handleReply(ctx context.Context, ev *Event) {
	session, ok := b.sessions.Get(ev.UserID)
	if !ok {
		log.WithField("user_id", ev.UserID).Debug("Reply outside a conversation, ignoring")
		return
	}

	b.sessions.Touch(ev.UserID)

	switch session.State {
	case StateDescription:
		b.receiveDescription(ctx, ev, session)
	case StateScreenshots:
		b.receiveScreenshot(ctx, ev, session)
	case StateConsoleLogs:
		b.receiveConsoleLogs(ctx, ev, session)
	case StateTags:
		b.receiveTags(ctx, ev, session)
	case StateEnvironment, StatePriority, StateConfirm:
		b.send(ctx, ev.ChatID, "⚠️ Please use the buttons above to continue.")
	default:
		log.WithFields(log.Fields{
			"user_id": ev.UserID,
			"state":   session.State,
		}).Warn("Reply in unexpected conversation state")
	}
}

// handleChoice routes a structured button press to the current step
func (b *Bot) handleChoice(ctx context.Context, ev *Event) {
	session, ok := b.sessions.Get(ev.UserID)
	if !ok {
		if err := b.sender.AnswerCallback(ctx, ev.CallbackID, "No active bug report. Use /bug to start one.", false); err != nil {
			log.WithError(err).Warn("Failed to answer stale callback")
		}
		return
	}

	b.sessions.Touch(ev.UserID)

	switch {
	case session.State == StateEnvironment && ev.Choice.Kind == choiceEnvironment:
		b.receiveEnvironment(ctx, ev, session)
	case session.State == StatePriority && ev.Choice.Kind == choicePriority:
		b.receivePriority(ctx, ev, session)
	case session.State == StateConfirm && ev.Choice.Kind == choiceConfirm:
		b.receiveConfirmation(ctx, ev, session)
	default:
		b.ackCallback(ctx, ev)
		log.WithFields(log.Fields{
			"user_id": ev.UserID,
			"state":   session.State,
			"choice":  ev.Choice.Kind,
		}).Debug("Choice does not match conversation state, ignoring")
	}
}

func (b *Bot) receiveDescription(ctx context.Context, ev *Event, session *Session) {
	if err := session.Draft.SetDescription(ev.Text); err != nil {
		b.send(ctx, ev.ChatID, promptDescriptionTooShort)
		return
	}

	session.State = StateScreenshots
	b.send(ctx, ev.ChatID, promptScreenshots)
}

func (b *Bot) receiveScreenshot(ctx context.Context, ev *Event, session *Session) {
	if ev.Photo != nil {
		session.Draft.AddScreenshot(*ev.Photo)
		count := len(session.Draft.Screenshots)
		b.send(ctx, ev.ChatID, fmt.Sprintf("✅ Screenshot %d received!\n\nSend more screenshots or type 'done' to continue.", count))
		return
	}

	if bugs.IsDoneToken(ev.Text) {
		if count := len(session.Draft.Screenshots); count > 0 {
			b.send(ctx, ev.ChatID, fmt.Sprintf("✅ Received %d screenshot(s).", count))
		} else {
			b.send(ctx, ev.ChatID, msgNoScreenshots)
		}

		session.State = StateEnvironment
		b.sendKeyboard(ctx, ev.ChatID, promptEnvironment, environmentKeyboard())
		return
	}

	b.send(ctx, ev.ChatID, promptScreenshotOrDone)
}

func (b *Bot) receiveEnvironment(ctx context.Context, ev *Event, session *Session) {
	environment, err := bugs.ParseEnvironment(ev.Choice.Value)
	if err != nil {
		if err := b.sender.AnswerCallback(ctx, ev.CallbackID, "Unrecognized environment choice.", true); err != nil {
			log.WithError(err).Warn("Failed to answer invalid environment callback")
		}
		return
	}

	session.Draft.Environment = environment
	b.ackCallback(ctx, ev)

	b.send(ctx, ev.ChatID, fmt.Sprintf("✅ Environment: %s", environment))
	session.State = StatePriority
	b.sendKeyboard(ctx, ev.ChatID, promptPriority, priorityKeyboard())
}

func (b *Bot) receivePriority(ctx context.Context, ev *Event, session *Session) {
	priority, err := bugs.ParsePriority(ev.Choice.Value)
	if err != nil {
		if err := b.sender.AnswerCallback(ctx, ev.CallbackID, "Unrecognized priority choice.", true); err != nil {
			log.WithError(err).Warn("Failed to answer invalid priority callback")
		}
		return
	}

	session.Draft.Priority = priority
	b.ackCallback(ctx, ev)

	b.send(ctx, ev.ChatID, fmt.Sprintf("✅ Priority: %s", priority))
	session.State = StateConsoleLogs
	b.send(ctx, ev.ChatID, promptConsoleLogs)
}

func (b *Bot) receiveConsoleLogs(ctx context.Context, ev *Event, session *Session) {
	if bugs.IsSkipToken(ev.Text) {
		b.send(ctx, ev.ChatID, msgNoConsoleLogs)
	} else {
		session.Draft.SetConsoleLogs(ev.Text)
		b.send(ctx, ev.ChatID, msgLogsSaved)
	}

	session.State = StateTags
	b.send(ctx, ev.ChatID, b.tagsPrompt(session.Draft))
}

// tagsPrompt builds the tags prompt, adding catalog suggestions when a
// catalog is loaded
func (b *Bot) tagsPrompt(draft *bugs.Draft) string {
	prompt := promptTags
	if b.catalog == nil {
		return prompt
	}

	suggested := b.catalog.Suggest(draft.Description+" "+draft.ConsoleLogs, maxTagSuggestions)
	if len(suggested) == 0 {
		return prompt
	}

	labels := make([]string, len(suggested))
	for i, tag := range suggested {
		labels[i] = tag.ID
	}
	return prompt + format.TagSuggestions(labels)
}

func (b *Bot) receiveTags(ctx context.Context, ev *Event, session *Session) {
	if bugs.IsSkipToken(ev.Text) {
		b.send(ctx, ev.ChatID, msgNoTags)
	} else {
		session.Draft.SetTags(ev.Text)
		b.send(ctx, ev.ChatID, fmt.Sprintf("✅ Added %d tag(s).", len(session.Draft.Tags)))
	}

	session.State = StateConfirm
	b.sendKeyboard(ctx, ev.ChatID, format.BugSummary(session.Draft), confirmationKeyboard())
}

func (b *Bot) receiveConfirmation(ctx context.Context, ev *Event, session *Session) {
	b.ackCallback(ctx, ev)

	switch strings.ToLower(ev.Choice.Value) {
	case actionSubmit:
		b.submitReport(ctx, ev, session)
	case actionEdit:
		b.sessions.End(ev.UserID)
		b.send(ctx, ev.ChatID, msgEditRestart)
	case actionCancel:
		b.sessions.End(ev.UserID)
		b.send(ctx, ev.ChatID, msgReportCanceled)
	default:
		log.WithField("value", ev.Choice.Value).Warn("Unrecognized confirmation action")
	}
}

// submitReport sends the draft to the backend. Success and failure
// both end the conversation; a failed submission is not auto-retried
// here because the client already retried transient failures.
func (b *Bot) submitReport(ctx context.Context, ev *Event, session *Session) {
	b.send(ctx, ev.ChatID, msgSubmitting)

	draft := session.Draft
	b.sessions.End(ev.UserID)

	response, err := b.client.CreateBug(ctx, draft)
	if err != nil {
		log.WithError(err).WithField("user_id", ev.UserID).Error("Failed to create bug")
		b.send(ctx, ev.ChatID, fmt.Sprintf(
			"❌ **Failed to submit bug report**\n\nError: %s\n\nPlease try again later or contact support.",
			userErrorText(err)))
		return
	}

	if b.metrics != nil {
		b.metrics.ReportsSubmittedTotal.Inc()
	}

	log.WithFields(log.Fields{
		"user_id": ev.UserID,
		"bug_id":  response.Key(),
	}).Info("Bug created")

	message := format.BugCreated(response)
	if b.classifier != nil {
		message += format.TriageResult(b.triageBug(ctx, response.Key(), draft))
	}

	b.send(ctx, ev.ChatID, message)
}

// triageBug classifies the freshly filed bug; classification failures
// degrade to the safe fallback and never fail the submission
func (b *Bot) triageBug(ctx context.Context, bugID string, draft *bugs.Draft) *triage.Evaluation {
	eval, err := b.classifier.Evaluate(ctx, &triage.Request{
		BugID:       bugID,
		Description: draft.Description,
		ConsoleLogs: draft.ConsoleLogs,
		Environment: string(draft.Environment),
		Priority:    string(draft.Priority),
		Tags:        draft.Tags,
	})
	if err != nil {
		log.WithError(err).WithField("bug_id", bugID).Warn("Bug triage failed")
		return triage.Fallback(err)
	}
	return eval
}

// cancelCommand aborts the conversation from any state
func (b *Bot) cancelCommand(ctx context.Context, ev *Event) {
	if _, ok := b.sessions.Get(ev.UserID); !ok {
		b.send(ctx, ev.ChatID, msgNothingToCancel)
		return
	}

	b.sessions.End(ev.UserID)
	b.send(ctx, ev.ChatID, msgCancelConfirm)
	log.WithField("user_id", ev.UserID).Info("User cancelled bug report")
}
