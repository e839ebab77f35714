package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The audit ledger. Writes are append-only with two exceptions: a request's
// status moves forward through its lifecycle, and a tool call transitions
// exactly once from initiated to a terminal status. Nothing is ever deleted.

// CreateSession records a fresh session for one incoming message.
func (s *Store) CreateSession(ctx context.Context, userID int) (Session, error) {
	row := sessionRow{
		SessionID: uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return row.toRecord(), nil
}

// TouchSession stamps the session's last interaction time.
func (s *Store) TouchSession(ctx context.Context, sessionID string) error {
	now := time.Now().UTC()
	res := s.db.WithContext(ctx).
		Model(&sessionRow{}).
		Where("session_id = ?", sessionID).
		Update("last_interaction_at", &now)
	if res.Error != nil {
		return fmt.Errorf("touch session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// SessionUser resolves the owning user id for a session. Tool execution
// trusts this value and nothing else.
func (s *Store) SessionUser(ctx context.Context, sessionID string) (int, error) {
	var row sessionRow
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("get session: %w", err)
	}
	return row.UserID, nil
}

// CreateRequest records the verbatim user message with status pending.
func (s *Store) CreateRequest(ctx context.Context, sessionID, content string) (Request, error) {
	row := requestRow{
		RequestID: uuid.NewString(),
		SessionID: sessionID,
		Content:   content,
		Status:    RequestPending,
		Timestamp: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Request{}, fmt.Errorf("create request: %w", err)
	}
	return row.toRecord(), nil
}

// SetRequestStatus advances a request through its lifecycle. Content is
// never rewritten.
func (s *Store) SetRequestStatus(ctx context.Context, requestID, status string) error {
	res := s.db.WithContext(ctx).
		Model(&requestRow{}).
		Where("request_id = ?", requestID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("set request status: %w", res.Error)
	}
	return nil
}

// RequestByID reads back one request record.
func (s *Store) RequestByID(ctx context.Context, requestID string) (Request, error) {
	var row requestRow
	err := s.db.WithContext(ctx).Where("request_id = ?", requestID).Take(&row).Error
	if err != nil {
		return Request{}, fmt.Errorf("get request: %w", err)
	}
	return row.toRecord(), nil
}

// SessionsForUser reads back the sessions recorded for one user.
func (s *Store) SessionsForUser(ctx context.Context, userID int) ([]Session, error) {
	var rows []sessionRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sessions := make([]Session, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, row.toRecord())
	}
	return sessions, nil
}

// RequestsForSession reads back the requests recorded for one session.
func (s *Store) RequestsForSession(ctx context.Context, sessionID string) ([]Request, error) {
	var rows []requestRow
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	requests := make([]Request, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, row.toRecord())
	}
	return requests, nil
}

// CreateToolCall records an attempted operation with status initiated.
// The session and request rows must exist beforehand.
func (s *Store) CreateToolCall(ctx context.Context, sessionID, requestID, toolName, paramsJSON string) (ToolCall, error) {
	row := toolCallRow{
		CallID:     uuid.NewString(),
		SessionID:  sessionID,
		RequestID:  requestID,
		ToolName:   toolName,
		Parameters: paramsJSON,
		Status:     CallInitiated,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ToolCall{}, fmt.Errorf("create tool call: %w", err)
	}
	return row.toRecord(), nil
}

// FinishToolCall moves an initiated call to a terminal status and attaches
// the result. Calls that already reached a terminal status are rejected.
func (s *Store) FinishToolCall(ctx context.Context, callID, status, resultJSON string) error {
	if status != CallSuccess && status != CallError {
		return fmt.Errorf("invalid terminal status %q", status)
	}
	res := s.db.WithContext(ctx).
		Model(&toolCallRow{}).
		Where("call_id = ? AND status = ?", callID, CallInitiated).
		Updates(map[string]any{"status": status, "result": resultJSON})
	if res.Error != nil {
		return fmt.Errorf("finish tool call: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrToolCallFinished
	}
	return nil
}

// ToolCallsForRequest reads back the calls recorded for one request.
func (s *Store) ToolCallsForRequest(ctx context.Context, requestID string) ([]ToolCall, error) {
	var rows []toolCallRow
	err := s.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("timestamp").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list tool calls: %w", err)
	}

	calls := make([]ToolCall, 0, len(rows))
	for _, row := range rows {
		calls = append(calls, row.toRecord())
	}
	return calls, nil
}

// CreateResponse records the reply surfaced to the user.
func (s *Store) CreateResponse(ctx context.Context, sessionID, requestID, content string) (AgentResponse, error) {
	row := responseRow{
		ResponseID: uuid.NewString(),
		SessionID:  sessionID,
		RequestID:  requestID,
		Content:    content,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return AgentResponse{}, fmt.Errorf("create response: %w", err)
	}
	return row.toRecord(), nil
}

// ResponsesForRequest reads back the responses recorded for one request.
func (s *Store) ResponsesForRequest(ctx context.Context, requestID string) ([]AgentResponse, error) {
	var rows []responseRow
	err := s.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("timestamp").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	responses := make([]AgentResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, row.toRecord())
	}
	return responses, nil
}
