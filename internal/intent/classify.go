package intent

import "strings"

// Classifier keyword sets, checked in priority order. First match wins;
// there is no scoring across sets.
var (
	createWords   = []string{"add", "create", "make", "new"}
	listWords     = []string{"list", "show", "view", "display", "see", "my"}
	updateWords   = []string{"update", "edit", "change", "modify"}
	deleteWords   = []string{"delete", "remove", "kill"}
	completeWords = []string{"complete", "finish", "done", "mark"}
)

// Classify maps a gate-accepted command to an action and its extracted
// parameters. Text that matches no keyword set defaults to listing tasks.
func Classify(command string) (Action, Params) {
	lower := strings.ToLower(strings.TrimSpace(command))

	switch {
	case containsAny(lower, createWords):
		return ActionCreateTask, Params{
			Title:       ExtractTitle(command),
			Description: ExtractDescription(command),
		}
	case containsAny(lower, listWords):
		return ActionListTasks, Params{}
	case containsAny(lower, updateWords):
		return ActionUpdateTask, Params{
			ID:          ExtractID(command),
			Title:       ExtractTitle(command),
			Description: ExtractDescription(command),
			Command:     command,
		}
	case containsAny(lower, deleteWords):
		return ActionDeleteTask, Params{
			ID:      ExtractID(command),
			Command: command,
		}
	case containsAny(lower, completeWords):
		completed := !(strings.Contains(lower, "incomplete") || strings.Contains(lower, "undo"))
		return ActionCompleteTask, Params{
			ID:        ExtractID(command),
			Completed: completed,
			Command:   command,
		}
	}

	return ActionListTasks, Params{}
}

func containsAny(lower string, words []string) bool {
	for _, word := range words {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
