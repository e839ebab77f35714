package intent

import "strings"

// ShowTasksCommand is the literal command forwarded for show/view messages.
// The classifier sees this text instead of the user's own words.
const ShowTasksCommand = "show my tasks"

// gateWords is the coarse in-domain vocabulary. It is deliberately narrower
// than the classifier's keyword sets: a message can pass classification
// vocabulary (e.g. "remove milk") yet still be refused here.
var gateWords = []string{"add", "delete", "update", "edit", "show", "view"}

// InDomain reports whether the message mentions the todo domain at all.
// Case-insensitive substring match against the gate vocabulary.
func InDomain(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, word := range gateWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// GateCommand applies the gate and returns the command text to classify.
// add/delete/update/edit messages pass through verbatim; show/view messages
// are rewritten to ShowTasksCommand. The ordered checks mirror the gate's
// original precedence: an action verb wins over show/view when both appear.
func GateCommand(text string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(lower, "add"),
		strings.Contains(lower, "delete"),
		strings.Contains(lower, "update"),
		strings.Contains(lower, "edit"):
		return text, true
	case strings.Contains(lower, "show"), strings.Contains(lower, "view"):
		return ShowTasksCommand, true
	}
	return "", false
}
