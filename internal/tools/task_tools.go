package tools

import (
	"context"
	"fmt"
	"strings"

	"taskbridge/internal/intent"
	"taskbridge/internal/store"
)

// NewTaskRegistry builds the registry of the five task tools backed by the
// given store.
func NewTaskRegistry(st *store.Store) *Registry {
	r := NewRegistry()
	r.MustRegister(createTaskTool(st))
	r.MustRegister(listTasksTool(st))
	r.MustRegister(updateTaskTool(st))
	r.MustRegister(deleteTaskTool(st))
	r.MustRegister(completeTaskTool(st))
	return r
}

func createTaskTool(st *store.Store) *Tool {
	return &Tool{
		Name:          string(intent.ActionCreateTask),
		Description:   "Create a new task with a title and optional description",
		FailurePrefix: "Failed to create task",
		Execute: func(ctx context.Context, userID int, params intent.Params) (Result, error) {
			task, err := st.CreateTask(ctx, userID, params.Title, params.Description)
			if err != nil {
				return Result{}, err
			}
			return Result{
				Response:     fmt.Sprintf("Task '%s' has been created successfully", task.Title),
				ActionResult: map[string]any{"task_id": task.ID, "task_title": task.Title},
				CallResult:   map[string]any{"task_id": task.ID, "title": task.Title},
			}, nil
		},
	}
}

func listTasksTool(st *store.Store) *Tool {
	return &Tool{
		Name:          string(intent.ActionListTasks),
		Description:   "List all of the user's tasks",
		FailurePrefix: "Failed to list tasks",
		Execute: func(ctx context.Context, userID int, params intent.Params) (Result, error) {
			tasks, err := st.ListTasks(ctx, userID)
			if err != nil {
				return Result{}, err
			}

			var response string
			if len(tasks) == 0 {
				response = "You don't have any tasks currently."
			} else {
				lines := make([]string, 0, len(tasks))
				for _, task := range tasks {
					status := "pending"
					if task.Completed {
						status = "completed"
					}
					lines = append(lines, fmt.Sprintf("- %s (%s)", task.Title, status))
				}
				response = fmt.Sprintf("You have %d task(s):\n%s", len(tasks), strings.Join(lines, "\n"))
			}

			summaries := make([]map[string]any, 0, len(tasks))
			for _, task := range tasks {
				summaries = append(summaries, map[string]any{
					"id":          task.ID,
					"title":       task.Title,
					"completed":   task.Completed,
					"description": task.Description,
				})
			}

			return Result{
				Response:     response,
				ActionResult: map[string]any{"task_count": len(tasks)},
				CallResult:   summaries,
			}, nil
		},
	}
}

func updateTaskTool(st *store.Store) *Tool {
	return &Tool{
		Name:          string(intent.ActionUpdateTask),
		Description:   "Update a task's title or description",
		FailurePrefix: "Failed to update task",
		Execute: func(ctx context.Context, userID int, params intent.Params) (Result, error) {
			taskID, err := resolveTarget(ctx, st, userID, params, "update")
			if err != nil {
				return Result{}, err
			}

			var patch store.TaskPatch
			if params.Title != "" {
				patch.Title = &params.Title
			}
			if params.Description != "" {
				patch.Description = &params.Description
			}

			task, err := st.UpdateTask(ctx, taskID, userID, patch)
			if err != nil {
				return Result{}, err
			}
			return Result{
				Response:     fmt.Sprintf("Task '%s' has been updated successfully", task.Title),
				ActionResult: map[string]any{"task_id": task.ID, "task_title": task.Title},
				CallResult: map[string]any{
					"id":          task.ID,
					"title":       task.Title,
					"description": task.Description,
				},
			}, nil
		},
	}
}

func deleteTaskTool(st *store.Store) *Tool {
	return &Tool{
		Name:          string(intent.ActionDeleteTask),
		Description:   "Delete a task",
		FailurePrefix: "Failed to delete task",
		Execute: func(ctx context.Context, userID int, params intent.Params) (Result, error) {
			taskID, err := resolveTarget(ctx, st, userID, params, "delete")
			if err != nil {
				return Result{}, err
			}

			task, err := st.DeleteTask(ctx, taskID, userID)
			if err != nil {
				return Result{}, err
			}
			return Result{
				Response:     fmt.Sprintf("Task '%s' has been deleted successfully", task.Title),
				ActionResult: map[string]any{"task_id": task.ID, "task_title": task.Title},
				CallResult:   map[string]any{"id": task.ID, "title": task.Title},
			}, nil
		},
	}
}

func completeTaskTool(st *store.Store) *Tool {
	return &Tool{
		Name:          string(intent.ActionCompleteTask),
		Description:   "Mark a task as completed or incomplete",
		FailurePrefix: "Failed to update task completion",
		Execute: func(ctx context.Context, userID int, params intent.Params) (Result, error) {
			// Completion never resolves by title; an explicit id is required.
			if params.ID == 0 {
				return Result{}, ErrIDRequired
			}

			task, err := st.SetTaskCompleted(ctx, params.ID, userID, params.Completed)
			if err != nil {
				return Result{}, err
			}

			statusWord := "completed"
			if !task.Completed {
				statusWord = "marked as incomplete"
			}
			return Result{
				Response: fmt.Sprintf("Task '%s' has been %s", task.Title, statusWord),
				ActionResult: map[string]any{
					"task_id":    task.ID,
					"task_title": task.Title,
					"completed":  task.Completed,
				},
				CallResult: map[string]any{
					"id":        task.ID,
					"title":     task.Title,
					"completed": task.Completed,
				},
			}, nil
		},
	}
}

// resolveTarget returns the task id to operate on: the extracted id when
// present, otherwise the best fuzzy title match against the raw command.
func resolveTarget(ctx context.Context, st *store.Store, userID int, params intent.Params, op string) (int, error) {
	if params.ID != 0 {
		return params.ID, nil
	}

	tasks, err := st.ListTasks(ctx, userID)
	if err != nil {
		return 0, err
	}
	candidates := make([]intent.Candidate, 0, len(tasks))
	for _, task := range tasks {
		candidates = append(candidates, intent.Candidate{ID: task.ID, Title: task.Title})
	}

	id, ok := intent.ResolveTask(candidates, params.Command)
	if !ok {
		return 0, &NoTargetError{Op: op}
	}
	return id, nil
}
