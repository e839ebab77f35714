package tools

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbridge/internal/intent"
	"taskbridge/internal/store"
)

func newTaskRegistry(t *testing.T) (*Registry, *store.Store) {
	t.Helper()
	st, err := store.Open("sqlite", filepath.Join(t.TempDir(), "tools.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewTaskRegistry(st), st
}

func TestNewTaskRegistry_AllFiveTools(t *testing.T) {
	reg, _ := newTaskRegistry(t)
	want := []string{"complete_task", "create_task", "delete_task", "list_tasks", "update_task"}
	assert.Equal(t, want, reg.Names())
}

func TestCreateTaskTool(t *testing.T) {
	reg, _ := newTaskRegistry(t)

	result, err := reg.Get("create_task").Execute(context.Background(), 1, intent.Params{
		Title:       "Buy groceries",
		Description: "weekly run",
	})
	require.NoError(t, err)
	assert.Equal(t, "Task 'Buy groceries' has been created successfully", result.Response)
	assert.Equal(t, "Buy groceries", result.ActionResult["task_title"])
	assert.NotZero(t, result.ActionResult["task_id"])
}

func TestListTasksTool_Empty(t *testing.T) {
	reg, _ := newTaskRegistry(t)

	result, err := reg.Get("list_tasks").Execute(context.Background(), 1, intent.Params{})
	require.NoError(t, err)
	assert.Equal(t, "You don't have any tasks currently.", result.Response)
	assert.Equal(t, 0, result.ActionResult["task_count"])
}

func TestListTasksTool_Formatting(t *testing.T) {
	reg, st := newTaskRegistry(t)
	ctx := context.Background()

	first, err := st.CreateTask(ctx, 1, "Buy milk", "")
	require.NoError(t, err)
	_, err = st.CreateTask(ctx, 1, "Walk dog", "")
	require.NoError(t, err)
	_, err = st.SetTaskCompleted(ctx, first.ID, 1, true)
	require.NoError(t, err)

	result, err := reg.Get("list_tasks").Execute(ctx, 1, intent.Params{})
	require.NoError(t, err)
	assert.Equal(t, "You have 2 task(s):\n- Buy milk (completed)\n- Walk dog (pending)", result.Response)
	assert.Equal(t, 2, result.ActionResult["task_count"])
}

func TestUpdateTaskTool_ByID(t *testing.T) {
	reg, st := newTaskRegistry(t)
	ctx := context.Background()

	task, err := st.CreateTask(ctx, 1, "Old title", "keep")
	require.NoError(t, err)

	result, err := reg.Get("update_task").Execute(ctx, 1, intent.Params{
		ID:    task.ID,
		Title: "New title",
	})
	require.NoError(t, err)
	assert.Equal(t, "Task 'New title' has been updated successfully", result.Response)

	updated, err := st.GetTask(ctx, task.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "keep", updated.Description, "unpatched fields must survive")
}

func TestDeleteTaskTool_FuzzyResolution(t *testing.T) {
	reg, st := newTaskRegistry(t)
	ctx := context.Background()

	_, err := st.CreateTask(ctx, 1, "buy groceries", "")
	require.NoError(t, err)

	result, err := reg.Get("delete_task").Execute(ctx, 1, intent.Params{
		Command: "delete buy groceries",
	})
	require.NoError(t, err)
	assert.Equal(t, "Task 'buy groceries' has been deleted successfully", result.Response)
}

func TestUpdateTaskTool_NoTarget(t *testing.T) {
	reg, _ := newTaskRegistry(t)

	_, err := reg.Get("update_task").Execute(context.Background(), 1, intent.Params{
		Command: "update something that does not exist",
	})
	var noTarget *NoTargetError
	require.ErrorAs(t, err, &noTarget)
	assert.Equal(t, "Task ID or title not found for update operation", err.Error())
}

func TestDeleteTaskTool_NoTarget(t *testing.T) {
	reg, _ := newTaskRegistry(t)

	_, err := reg.Get("delete_task").Execute(context.Background(), 1, intent.Params{
		Command: "delete xyzzy",
	})
	var noTarget *NoTargetError
	require.ErrorAs(t, err, &noTarget)
	assert.Equal(t, "Task ID or title not found for delete operation", err.Error())
}

func TestDeleteTaskTool_StoreNotFound(t *testing.T) {
	reg, _ := newTaskRegistry(t)

	_, err := reg.Get("delete_task").Execute(context.Background(), 1, intent.Params{ID: 99})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestCompleteTaskTool(t *testing.T) {
	reg, st := newTaskRegistry(t)
	ctx := context.Background()

	task, err := st.CreateTask(ctx, 1, "Ship release", "")
	require.NoError(t, err)

	result, err := reg.Get("complete_task").Execute(ctx, 1, intent.Params{
		ID:        task.ID,
		Completed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Task 'Ship release' has been completed", result.Response)
	assert.Equal(t, true, result.ActionResult["completed"])

	result, err = reg.Get("complete_task").Execute(ctx, 1, intent.Params{
		ID:        task.ID,
		Completed: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Task 'Ship release' has been marked as incomplete", result.Response)
}

func TestCompleteTaskTool_RequiresID(t *testing.T) {
	reg, _ := newTaskRegistry(t)

	_, err := reg.Get("complete_task").Execute(context.Background(), 1, intent.Params{
		Command:   "complete the release task",
		Completed: true,
	})
	require.True(t, errors.Is(err, ErrIDRequired))
	assert.Equal(t, "Task ID is required for complete operation", err.Error())
}

func TestTaskTools_UserScoping(t *testing.T) {
	reg, st := newTaskRegistry(t)
	ctx := context.Background()

	other, err := st.CreateTask(ctx, 2, "other user's task", "")
	require.NoError(t, err)

	// User 1 cannot delete user 2's task even with the explicit id.
	_, err = reg.Get("delete_task").Execute(ctx, 1, intent.Params{ID: other.ID})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	// And it never shows up in user 1's listing.
	result, err := reg.Get("list_tasks").Execute(ctx, 1, intent.Params{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ActionResult["task_count"])
}
