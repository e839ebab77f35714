package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CreateTask inserts a new task owned by userID.
func (s *Store) CreateTask(ctx context.Context, userID int, title, description string) (Task, error) {
	row := taskRow{
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}
	return row.toRecord(), nil
}

// ListTasks returns all tasks owned by userID in creation (id) order.
func (s *Store) ListTasks(ctx context.Context, userID int) ([]Task, error) {
	var rows []taskRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toRecord())
	}
	return tasks, nil
}

// GetTask fetches one task by id, scoped to userID.
func (s *Store) GetTask(ctx context.Context, id, userID int) (Task, error) {
	var row taskRow
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("get task: %w", err)
	}
	return row.toRecord(), nil
}

// UpdateTask applies the non-nil patch fields to the task. Fields absent
// from the patch are left untouched.
func (s *Store) UpdateTask(ctx context.Context, id, userID int, patch TaskPatch) (Task, error) {
	var row taskRow
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("get task: %w", err)
	}

	if patch.Title != nil {
		row.Title = *patch.Title
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.Completed != nil {
		row.Completed = *patch.Completed
	}

	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return Task{}, fmt.Errorf("update task: %w", err)
	}
	return row.toRecord(), nil
}

// DeleteTask removes the task and returns the deleted record.
func (s *Store) DeleteTask(ctx context.Context, id, userID int) (Task, error) {
	var row taskRow
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("get task: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&taskRow{}, row.ID).Error; err != nil {
		return Task{}, fmt.Errorf("delete task: %w", err)
	}
	return row.toRecord(), nil
}

// SetTaskCompleted flips the completion flag.
func (s *Store) SetTaskCompleted(ctx context.Context, id, userID int, completed bool) (Task, error) {
	return s.UpdateTask(ctx, id, userID, TaskPatch{Completed: &completed})
}
