// Package tools provides the registry of task operations the agent can
// dispatch to. Each tool wraps one Task Store operation and produces both a
// human-readable response and the structured payloads recorded on the
// audit ledger.
package tools

import (
	"context"

	"taskbridge/internal/intent"
)

// ExecuteFunc runs a tool for the given user with the extracted parameters.
// The user id comes from the session record, never from the parameters.
type ExecuteFunc func(ctx context.Context, userID int, params intent.Params) (Result, error)

// Result is a successful tool execution.
type Result struct {
	// Response is the reply surfaced to the user.
	Response string

	// ActionResult is the structured payload returned to the caller.
	ActionResult map[string]any

	// CallResult is recorded as JSON on the tool call audit record.
	CallResult any
}

// Tool defines one executable task operation.
type Tool struct {
	// Name is the unique identifier, e.g. "create_task". Must match the
	// action names produced by the intent classifier.
	Name string

	// Description explains what the tool does.
	Description string

	// FailurePrefix opens the templated failure message, e.g.
	// "Failed to create task".
	FailurePrefix string

	// Execute runs the tool.
	Execute ExecuteFunc
}

// Validate checks if the tool definition is usable.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return ErrToolNameEmpty
	}
	if t.Execute == nil {
		return ErrToolExecuteNil
	}
	return nil
}
