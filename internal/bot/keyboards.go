package bot

// Callback-data kinds understood by the conversation
const (
	choiceEnvironment = "env"
	choicePriority    = "priority"
	choiceConfirm     = "confirm"
)

// Confirmation actions
const (
	actionSubmit = "submit"
	actionEdit   = "edit"
	actionCancel = "cancel"
)

func environmentKeyboard() Keyboard {
	return Keyboard{
		{
			{Label: "🔧 DEV", Data: "env_DEV"},
			{Label: "🚀 PROD", Data: "env_PROD"},
		},
	}
}

func priorityKeyboard() Keyboard {
	return Keyboard{
		{{Label: "🟢 Low", Data: "priority_LOW"}},
		{{Label: "🟡 Medium", Data: "priority_MEDIUM"}},
		{{Label: "🔴 High", Data: "priority_HIGH"}},
		{{Label: "💀 Critical", Data: "priority_CRITICAL"}},
	}
}

func confirmationKeyboard() Keyboard {
	return Keyboard{
		{
			{Label: "✅ Submit", Data: "confirm_submit"},
			{Label: "✏️ Edit", Data: "confirm_edit"},
		},
		{
			{Label: "❌ Cancel", Data: "confirm_cancel"},
		},
	}
}
