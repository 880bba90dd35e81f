package services

var quickPrompts = []string{
	"Give me the patient's first name, last name, and DOB.",
	"Who is the provider for the next appointment?",
	"Where is the next appointment located?",
}

// QuickPrompts returns the canned operator prompts in display order
func QuickPrompts() []string {
	out := make([]string, len(quickPrompts))
	copy(out, quickPrompts)
	return out
}

// QuickPrompt returns prompt i, or false when i is out of range
func QuickPrompt(i int) (string, bool) {
	if i < 0 || i >= len(quickPrompts) {
		return "", false
	}
	return quickPrompts[i], true
}
