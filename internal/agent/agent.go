// Package agent runs the message pipeline: gate the raw text, classify it
// into a task action, execute the matching tool, and record every step in
// the audit ledger.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"taskbridge/internal/intent"
	"taskbridge/internal/store"
	"taskbridge/internal/tools"
)

// Refusal is the fixed reply for messages the gate keeps out of the
// pipeline. Off-domain text never reaches a tool.
const Refusal = "I can only help with your todo tasks."

// Result is what a processed message produces. ProcessMessage never
// returns an error: every failure mode collapses into a Result the
// caller can hand straight back to the user.
type Result struct {
	Response        string         `json:"response"`
	ActionPerformed bool           `json:"action_performed"`
	ActionResult    map[string]any `json:"action_result"`
}

// Agent ties the intent pipeline to the tool registry and the ledger.
type Agent struct {
	store    *store.Store
	registry *tools.Registry
	logger   *zap.Logger
}

// New builds an agent. A nil logger falls back to a no-op logger.
func New(st *store.Store, registry *tools.Registry, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{store: st, registry: registry, logger: logger}
}

// ProcessMessage runs one message through the full pipeline on behalf of
// userID. The session, request, tool call, and response rows are written
// as side effects; the returned Result carries the user-facing outcome.
func (a *Agent) ProcessMessage(ctx context.Context, userID int, message string) Result {
	log := a.logger.With(zap.Int("user_id", userID))
	log.Debug("processing message", zap.String("message", message))

	session, err := a.store.CreateSession(ctx, userID)
	if err != nil {
		log.Error("failed to create session", zap.Error(err))
		return internalFailure(err)
	}

	request, err := a.store.CreateRequest(ctx, session.SessionID, message)
	if err != nil {
		log.Error("failed to record request", zap.Error(err))
		return internalFailure(err)
	}

	if err := a.store.SetRequestStatus(ctx, request.RequestID, store.RequestProcessing); err != nil {
		log.Error("failed to advance request", zap.Error(err))
		a.failRequest(ctx, request.RequestID)
		return internalFailure(err)
	}

	command, ok := intent.GateCommand(message)
	if !ok {
		// The refused message stays on the ledger as a request row, but
		// no tool call is ever opened for it.
		log.Debug("message refused by gate")
		return Result{Response: Refusal, ActionResult: map[string]any{}}
	}

	action, params := intent.Classify(command)
	result := a.dispatch(ctx, session.SessionID, request.RequestID, action, params)

	if _, err := a.store.CreateResponse(ctx, session.SessionID, request.RequestID, result.Response); err != nil {
		// The user still gets their answer; the gap is logged.
		log.Error("failed to record response", zap.Error(err))
	}
	if err := a.store.TouchSession(ctx, session.SessionID); err != nil {
		log.Error("failed to touch session", zap.Error(err))
	}
	if err := a.store.SetRequestStatus(ctx, request.RequestID, store.RequestCompleted); err != nil {
		log.Error("failed to complete request", zap.Error(err))
	}
	return result
}

// dispatch executes one classified action and transitions its tool call
// record from initiated to exactly one terminal status.
func (a *Agent) dispatch(ctx context.Context, sessionID, requestID string, action intent.Action, params intent.Params) Result {
	tool := a.registry.Get(string(action))
	if tool == nil {
		return Result{Response: "Command not recognized", ActionResult: map[string]any{}}
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		paramsJSON = []byte("{}")
	}

	call, err := a.store.CreateToolCall(ctx, sessionID, requestID, tool.Name, string(paramsJSON))
	if err != nil {
		a.logger.Error("failed to open tool call", zap.String("tool", tool.Name), zap.Error(err))
		a.failRequest(ctx, requestID)
		return internalFailure(err)
	}

	// The owning user comes from the session row, not from anything in
	// the message.
	ownerID, err := a.store.SessionUser(ctx, sessionID)
	if err != nil {
		a.finishCall(ctx, call.CallID, store.CallError, map[string]any{"error": err.Error()})
		a.failRequest(ctx, requestID)
		return internalFailure(err)
	}

	result, err := tool.Execute(ctx, ownerID, params)
	if err != nil {
		a.logger.Warn("tool execution failed",
			zap.String("tool", tool.Name),
			zap.Error(err))
		a.finishCall(ctx, call.CallID, store.CallError, map[string]any{"error": err.Error()})
		return Result{
			Response:     fmt.Sprintf("%s: %v", tool.FailurePrefix, err),
			ActionResult: map[string]any{},
		}
	}

	a.finishCall(ctx, call.CallID, store.CallSuccess, result.CallResult)
	return Result{
		Response:        result.Response,
		ActionPerformed: true,
		ActionResult:    result.ActionResult,
	}
}

func (a *Agent) finishCall(ctx context.Context, callID, status string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("{}")
	}
	if err := a.store.FinishToolCall(ctx, callID, status, string(data)); err != nil {
		a.logger.Error("failed to finish tool call",
			zap.String("call_id", callID),
			zap.Error(err))
	}
}

func (a *Agent) failRequest(ctx context.Context, requestID string) {
	if err := a.store.SetRequestStatus(ctx, requestID, store.RequestFailed); err != nil {
		a.logger.Error("failed to mark request failed", zap.Error(err))
	}
}

func internalFailure(err error) Result {
	return Result{
		Response:     fmt.Sprintf("Sorry, something went wrong: %v", err),
		ActionResult: map[string]any{},
	}
}
