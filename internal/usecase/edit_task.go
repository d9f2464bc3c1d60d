package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskman/internal/domain"
)

// EditTaskInput contains the parameters for editing a task.
// Only non-nil fields are updated.
type EditTaskInput struct {
	Description *string        // New description (nil = no change)
	Status      *domain.Status // New status (nil = no change)
	TaskID      int            // Task ID to edit (required)
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task *domain.Task // The updated task
}

// EditTask is the use case for editing an existing task.
type EditTask struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(tasks domain.TaskRepository, logger domain.Logger) *EditTask {
	return &EditTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute edits a task with the given input.
func (uc *EditTask) Execute(_ context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	if in.Description == nil && in.Status == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	var desc string
	if in.Description != nil {
		d, err := domain.NormalizeDescription(*in.Description)
		if err != nil {
			return nil, err
		}
		desc = d
	}

	if in.Status != nil && !in.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *in.Status)
	}

	task, err := uc.tasks.Get(in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task #%d: %w", in.TaskID, err)
	}

	if in.Description != nil {
		task.Description = desc
	}
	if in.Status != nil {
		task.Status = *in.Status
	}

	if err := uc.tasks.Update(task.ID, task.Description, task.Status); err != nil {
		return nil, fmt.Errorf("update task #%d: %w", task.ID, err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("edited: %q (%s)", task.Description, task.Status))
	}

	return &EditTaskOutput{Task: task}, nil
}
