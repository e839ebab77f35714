// Package store persists tasks, users and the audit ledger behind gorm.
// SQLite is the default backend; postgres is selectable by config. All task
// operations are scoped by user id — there is no unscoped mutation path.
package store

import "time"

// Task is a user's to-do item.
type Task struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskPatch carries the optional fields of a task update. Nil means leave
// the field untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// User is an account that owns tasks.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Request processing statuses.
const (
	RequestPending    = "pending"
	RequestProcessing = "processing"
	RequestCompleted  = "completed"
	RequestFailed     = "failed"
)

// Tool call statuses. A call is created initiated and moves exactly once to
// success or error.
const (
	CallInitiated = "initiated"
	CallSuccess   = "success"
	CallError     = "error"
)

// Session is one conversational turn's context. A fresh session is created
// for every incoming message and never reused.
type Session struct {
	SessionID         string
	UserID            int
	CreatedAt         time.Time
	LastInteractionAt *time.Time
}

// Request is the verbatim user message under processing.
type Request struct {
	RequestID string
	SessionID string
	Content   string
	Status    string
	Timestamp time.Time
}

// ToolCall is the audit record of one attempted operation.
type ToolCall struct {
	CallID     string
	SessionID  string
	RequestID  string
	ToolName   string
	Parameters string // JSON
	Result     string // JSON, empty until terminal
	Status     string
	Timestamp  time.Time
}

// AgentResponse is the reply surfaced to the user, written once after the
// tool call is terminal.
type AgentResponse struct {
	ResponseID string
	SessionID  string
	RequestID  string
	Content    string
	Timestamp  time.Time
}
