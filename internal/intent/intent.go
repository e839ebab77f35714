// Package intent turns free-form command text into structured task
// operations. It is pure string processing: the gate filters off-domain
// messages, the classifier picks one of the five task actions, the
// extractor pulls title/description/id out of the text, and the resolver
// scores task titles for fuzzy targeting. No I/O happens here.
package intent

// Action identifies one of the supported task operations.
type Action string

const (
	ActionCreateTask   Action = "create_task"
	ActionListTasks    Action = "list_tasks"
	ActionUpdateTask   Action = "update_task"
	ActionDeleteTask   Action = "delete_task"
	ActionCompleteTask Action = "complete_task"
)

// Params carries the values extracted from a command. Zero ID means no
// explicit task id was found. Command preserves the raw text for fuzzy
// title resolution downstream.
type Params struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ID          int    `json:"id,omitempty"`
	Completed   bool   `json:"completed,omitempty"`
	Command     string `json:"command,omitempty"`
}
