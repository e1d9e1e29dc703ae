package bot

// Static message texts for the report flow and the /start and /help
// commands. Kept together so the conversational voice stays consistent.

const (
	promptDescription = "🐛 **Let's report a bug!**\n\n" +
		"Please describe the bug you encountered.\n" +
		"Be as specific as possible.\n\n" +
		"_(Type /cancel to abort at any time)_"

	promptDescriptionTooShort = "⚠️ Please provide a more detailed description (at least 10 characters)."

	promptScreenshots = "📸 **Screenshots**\n\n" +
		"Send one or more screenshots of the bug.\n" +
		"You can send multiple photos in a row.\n\n" +
		"Type 'skip' or 'done' when finished."

	promptScreenshotOrDone = "⚠️ Please send a photo or type 'skip'/'done' to continue."

	promptEnvironment = "🌍 **Environment**\n\nIn which environment did you encounter this bug?"

	promptPriority = "🎯 **Priority Level**\n\nHow critical is this bug?"

	promptConsoleLogs = "📋 **Console Logs**\n\n" +
		"Do you have any console logs or error messages?\n" +
		"Paste them here or type 'skip'."

	promptTags = "🏷️ **Tags**\n\n" +
		"Add tags to categorize this bug (comma-separated).\n" +
		"Examples: UI, mobile, authentication\n\n" +
		"Type 'skip' to skip."

	msgDraftDiscarded = "♻️ Your previous unfinished report was discarded."

	msgNoScreenshots  = "📝 No screenshots added."
	msgNoConsoleLogs  = "📝 No console logs added."
	msgNoTags         = "📝 No tags added."
	msgLogsSaved      = "✅ Console logs saved."
	msgSubmitting     = "⏳ Submitting bug report..."
	msgReportCanceled = "❌ Bug report cancelled."

	msgCancelConfirm = "❌ Bug report cancelled.\n\nUse /bug to start a new report anytime."

	msgNothingToCancel = "There's nothing to cancel right now.\n\nUse /bug to start a bug report."

	msgEditRestart = "✏️ To edit the bug report, please start over with /bug.\n" +
		"This report has been cancelled."

	welcomeTemplate = "👋 **Welcome, %s!**\n\n" +
		"I'm your bug reporting assistant. I'll help you report bugs " +
		"in the application quickly and efficiently.\n\n" +
		"**Available Commands:**\n" +
		"• /bug - Report a new bug (interactive)\n" +
		"• /mybugs - View your bug reports\n" +
		"• /view BUG-001 - View full bug details\n" +
		"• /status BUG-001 FIXED - Update bug status\n" +
		"• /stats - View overall bug statistics\n" +
		"• /help - Show this help message\n" +
		"• /cancel - Cancel current operation\n\n" +
		"**Quick Start:**\n" +
		"Type /bug to start reporting a bug. I'll guide you through the process step by step.\n\n" +
		"Let's squash some bugs! 🐛"

	helpMessage = "📖 **Bug Reporter Help**\n\n" +
		"**Reporting a Bug:**\n" +
		"1. Send /bug to start\n" +
		"2. Answer questions step-by-step:\n" +
		"   • Describe the bug\n" +
		"   • Send screenshot(s) or skip\n" +
		"   • Select environment (DEV/PROD)\n" +
		"   • Select priority level\n" +
		"   • Add console logs (optional)\n" +
		"   • Add tags (optional)\n" +
		"3. Review and confirm\n" +
		"4. Get your bug ID\n\n" +
		"**Commands:**\n" +
		"• /bug - Start new bug report\n" +
		"• /mybugs - View your reports\n" +
		"• /view BUG-001 - View bug details\n" +
		"• /status BUG-001 FIXED - Update status\n" +
		"• /stats - View statistics\n" +
		"• /cancel - Cancel current operation\n" +
		"• /help - Show this message\n\n" +
		"**Status Values:**\n" +
		"• OPEN - Bug not started\n" +
		"• IN\\_PROGRESS - Being worked on\n" +
		"• FIXED - Bug resolved\n" +
		"• CLOSED - Bug archived\n\n" +
		"**Tips:**\n" +
		"• You can send multiple screenshots\n" +
		"• Type 'skip' to skip optional steps\n" +
		"• Use /cancel anytime to abort\n" +
		"• Clear descriptions help faster fixes\n\n" +
		"Need assistance? Contact your administrator."

	usageView = "❌ **Invalid usage**\n\n" +
		"**Usage:** `/view BUG-001`\n\n" +
		"**Example:**\n" +
		"`/view BUG-001`"

	usageStatus = "❌ **Invalid usage**\n\n" +
		"**Usage:** `/status BUG-001 FIXED`\n\n" +
		"**Valid statuses:**\n" +
		"• OPEN\n" +
		"• IN\\_PROGRESS\n" +
		"• FIXED\n" +
		"• CLOSED\n\n" +
		"**Example:**\n" +
		"`/status BUG-001 FIXED`"
)
