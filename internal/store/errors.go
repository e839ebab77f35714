package store

import "errors"

var (
	// ErrTaskNotFound is returned when a task is absent or owned by
	// another user. The text is surfaced verbatim in agent responses.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound is returned for unknown user ids or emails.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering a duplicate email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrSessionNotFound is returned for unknown session ids.
	ErrSessionNotFound = errors.New("session not found")

	// ErrToolCallFinished is returned when a terminal tool call is
	// finished a second time. The initiated→terminal transition happens
	// exactly once.
	ErrToolCallFinished = errors.New("tool call already finished")
)
