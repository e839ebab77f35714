package store

import "time"

type userRow struct {
	ID           int       `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

func (r userRow) toRecord() User {
	return User{ID: r.ID, Email: r.Email, PasswordHash: r.PasswordHash, CreatedAt: r.CreatedAt}
}

type taskRow struct {
	ID          int       `gorm:"primaryKey;autoIncrement"`
	UserID      int       `gorm:"index;not null"`
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	Completed   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (taskRow) TableName() string { return "tasks" }

func (r taskRow) toRecord() Task {
	return Task{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt,
	}
}

type sessionRow struct {
	SessionID         string     `gorm:"primaryKey;size:64"`
	UserID            int        `gorm:"index;not null"`
	CreatedAt         time.Time  `gorm:"not null"`
	LastInteractionAt *time.Time `gorm:""`
}

func (sessionRow) TableName() string { return "agent_sessions" }

func (r sessionRow) toRecord() Session {
	return Session{
		SessionID:         r.SessionID,
		UserID:            r.UserID,
		CreatedAt:         r.CreatedAt,
		LastInteractionAt: r.LastInteractionAt,
	}
}

type requestRow struct {
	RequestID string    `gorm:"primaryKey;size:64"`
	SessionID string    `gorm:"size:64;index;not null"`
	Content   string    `gorm:"size:2000;not null"`
	Status    string    `gorm:"size:32;not null"`
	Timestamp time.Time `gorm:"not null"`
}

func (requestRow) TableName() string { return "user_requests" }

func (r requestRow) toRecord() Request {
	return Request{
		RequestID: r.RequestID,
		SessionID: r.SessionID,
		Content:   r.Content,
		Status:    r.Status,
		Timestamp: r.Timestamp,
	}
}

type toolCallRow struct {
	CallID     string    `gorm:"primaryKey;size:64"`
	SessionID  string    `gorm:"size:64;index;not null"`
	RequestID  string    `gorm:"size:64;index;not null"`
	ToolName   string    `gorm:"size:64;not null"`
	Parameters string    `gorm:"type:text;not null"`
	Result     string    `gorm:"type:text"`
	Status     string    `gorm:"size:32;not null"`
	Timestamp  time.Time `gorm:"not null"`
}

func (toolCallRow) TableName() string { return "tool_calls" }

func (r toolCallRow) toRecord() ToolCall {
	return ToolCall{
		CallID:     r.CallID,
		SessionID:  r.SessionID,
		RequestID:  r.RequestID,
		ToolName:   r.ToolName,
		Parameters: r.Parameters,
		Result:     r.Result,
		Status:     r.Status,
		Timestamp:  r.Timestamp,
	}
}

type responseRow struct {
	ResponseID string    `gorm:"primaryKey;size:64"`
	SessionID  string    `gorm:"size:64;index;not null"`
	RequestID  string    `gorm:"size:64;index;not null"`
	Content    string    `gorm:"size:2000;not null"`
	Timestamp  time.Time `gorm:"not null"`
}

func (responseRow) TableName() string { return "agent_responses" }

func (r responseRow) toRecord() AgentResponse {
	return AgentResponse{
		ResponseID: r.ResponseID,
		SessionID:  r.SessionID,
		RequestID:  r.RequestID,
		Content:    r.Content,
		Timestamp:  r.Timestamp,
	}
}
