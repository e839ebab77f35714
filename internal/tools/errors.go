package tools

import (
	"errors"
	"fmt"
)

// Tool registry errors.
var (
	// ErrToolNotFound is returned when a tool is not registered.
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolNameEmpty is returned when a tool has no name.
	ErrToolNameEmpty = errors.New("tool name cannot be empty")

	// ErrToolExecuteNil is returned when a tool has no execute function.
	ErrToolExecuteNil = errors.New("tool execute function cannot be nil")

	// ErrToolAlreadyRegistered is returned when registering a duplicate.
	ErrToolAlreadyRegistered = errors.New("tool already registered")
)

// ErrIDRequired is returned by complete_task when no explicit task id was
// extracted; completion never falls back to fuzzy title matching. The text
// is surfaced verbatim in the failure response.
var ErrIDRequired = errors.New("Task ID is required for complete operation")

// NoTargetError reports that an operation had neither an explicit id nor a
// fuzzy title match. The text is surfaced verbatim in the failure response.
type NoTargetError struct {
	Op string // "update" or "delete"
}

func (e *NoTargetError) Error() string {
	return fmt.Sprintf("Task ID or title not found for %s operation", e.Op)
}
