package agent

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbridge/internal/store"
	"taskbridge/internal/tools"
)

func newTestAgent(t *testing.T) (*Agent, *store.Store) {
	t.Helper()
	s, err := store.Open("sqlite", filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return New(s, tools.NewTaskRegistry(s), nil), s
}

// ledgerTrail pulls back everything written for a user's single message.
func ledgerTrail(t *testing.T, s *store.Store, userID int) ([]store.Request, []store.ToolCall, []store.AgentResponse) {
	t.Helper()
	ctx := context.Background()

	sessions, err := s.SessionsForUser(ctx, userID)
	require.NoError(t, err)

	var requests []store.Request
	var calls []store.ToolCall
	var responses []store.AgentResponse
	for _, sess := range sessions {
		reqs, err := s.RequestsForSession(ctx, sess.SessionID)
		require.NoError(t, err)
		requests = append(requests, reqs...)
		for _, req := range reqs {
			cs, err := s.ToolCallsForRequest(ctx, req.RequestID)
			require.NoError(t, err)
			calls = append(calls, cs...)
			rs, err := s.ResponsesForRequest(ctx, req.RequestID)
			require.NoError(t, err)
			responses = append(responses, rs...)
		}
	}
	return requests, calls, responses
}

func TestProcessMessage_RefusesOffDomainText(t *testing.T) {
	a, s := newTestAgent(t)
	ctx := context.Background()

	res := a.ProcessMessage(ctx, 1, "what's the weather like today?")
	assert.Equal(t, Refusal, res.Response)
	assert.False(t, res.ActionPerformed)
	assert.Empty(t, res.ActionResult)

	// The refused message is still on the ledger, but nothing past the
	// gate ran for it.
	requests, calls, responses := ledgerTrail(t, s, 1)
	require.Len(t, requests, 1)
	assert.Equal(t, "what's the weather like today?", requests[0].Content)
	assert.Equal(t, store.RequestProcessing, requests[0].Status)
	assert.Empty(t, calls)
	assert.Empty(t, responses)
}

func TestProcessMessage_GateNeedsAnActionWord(t *testing.T) {
	a, _ := newTestAgent(t)
	ctx := context.Background()

	// Messages without one of the gate's action words are refused even
	// when they talk about tasks.
	for _, msg := range []string{"list my tasks", "complete task 3", "mark task 3 as incomplete"} {
		res := a.ProcessMessage(ctx, 1, msg)
		assert.Equal(t, Refusal, res.Response, "message %q", msg)
		assert.False(t, res.ActionPerformed)
	}
}

func TestProcessMessage_ShowTasksWhenEmpty(t *testing.T) {
	a, s := newTestAgent(t)
	ctx := context.Background()

	res := a.ProcessMessage(ctx, 1, "show my tasks")
	assert.Equal(t, "You don't have any tasks currently.", res.Response)
	assert.True(t, res.ActionPerformed)
	assert.Equal(t, 0, res.ActionResult["task_count"])

	requests, calls, responses := ledgerTrail(t, s, 1)
	require.Len(t, requests, 1)
	assert.Equal(t, store.RequestCompleted, requests[0].Status)
	require.Len(t, calls, 1)
	assert.Equal(t, "list_tasks", calls[0].ToolName)
	assert.Equal(t, store.CallSuccess, calls[0].Status)
	require.Len(t, responses, 1)
	assert.Equal(t, res.Response, responses[0].Content)
}

func TestProcessMessage_CreateThenShow(t *testing.T) {
	a, _ := newTestAgent(t)
	ctx := context.Background()

	res := a.ProcessMessage(ctx, 1, "add a task called 'Buy groceries'")
	assert.Equal(t, "Task 'Buy groceries' has been created successfully", res.Response)
	assert.True(t, res.ActionPerformed)
	assert.Equal(t, "Buy groceries", res.ActionResult["task_title"])

	res = a.ProcessMessage(ctx, 1, "show my tasks")
	assert.True(t, res.ActionPerformed)
	assert.Contains(t, res.Response, "You have 1 task(s):")
	assert.Contains(t, res.Response, "- Buy groceries (pending)")
}

func TestProcessMessage_DeleteMissingTask(t *testing.T) {
	a, s := newTestAgent(t)
	ctx := context.Background()

	res := a.ProcessMessage(ctx, 1, "delete task 5")
	assert.Equal(t, "Failed to delete task: task not found", res.Response)
	assert.False(t, res.ActionPerformed)
	assert.Empty(t, res.ActionResult)

	// The failed attempt still closes out: the call is terminal with the
	// error recorded, and the request finished its lifecycle.
	requests, calls, _ := ledgerTrail(t, s, 1)
	require.Len(t, requests, 1)
	assert.Equal(t, store.RequestCompleted, requests[0].Status)
	require.Len(t, calls, 1)
	assert.Equal(t, store.CallError, calls[0].Status)
	assert.Contains(t, calls[0].Result, "task not found")
}

func TestProcessMessage_DeleteByTitle(t *testing.T) {
	a, s := newTestAgent(t)
	ctx := context.Background()

	task, err := s.CreateTask(ctx, 1, "Buy groceries", "")
	require.NoError(t, err)

	res := a.ProcessMessage(ctx, 1, "delete the buy groceries task")
	assert.Equal(t, "Task 'Buy groceries' has been deleted successfully", res.Response)
	assert.True(t, res.ActionPerformed)

	_, err = s.GetTask(ctx, task.ID, 1)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestProcessMessage_UserIsolation(t *testing.T) {
	a, s := newTestAgent(t)
	ctx := context.Background()

	task, err := s.CreateTask(ctx, 2, "Pay rent", "")
	require.NoError(t, err)

	res := a.ProcessMessage(ctx, 1, "delete task 1")
	assert.Equal(t, "Failed to delete task: task not found", res.Response)
	assert.False(t, res.ActionPerformed)

	got, err := s.GetTask(ctx, task.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "Pay rent", got.Title)
}

func TestProcessMessage_RecordsParameters(t *testing.T) {
	a, s := newTestAgent(t)
	ctx := context.Background()

	a.ProcessMessage(ctx, 1, "add a task called 'Call mom'")

	_, calls, _ := ledgerTrail(t, s, 1)
	require.Len(t, calls, 1)
	assert.Equal(t, "create_task", calls[0].ToolName)
	assert.Contains(t, calls[0].Parameters, `"title":"Call mom"`)
	assert.Contains(t, calls[0].Result, `"task_id"`)
}

func TestProcessMessage_OneSessionPerMessage(t *testing.T) {
	a, s := newTestAgent(t)
	ctx := context.Background()

	a.ProcessMessage(ctx, 1, "add a task called 'One'")
	a.ProcessMessage(ctx, 1, "show my tasks")

	sessions, err := s.SessionsForUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	requests, calls, responses := ledgerTrail(t, s, 1)
	assert.Len(t, requests, 2)
	assert.Len(t, calls, 2)
	assert.Len(t, responses, 2)
}
