package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskman/internal/domain"
)

// CreateTasksFromFileInput contains the parameters for creating tasks from a file.
type CreateTasksFromFileInput struct {
	Content string // File content (YAML list)
	DryRun  bool   // If true, parse and validate without creating tasks
}

// CreatedTask represents a task that was created from file input.
type CreatedTask struct {
	Description string
	Status      domain.Status
	ID          int // Zero in dry-run mode
}

// CreateTasksFromFileOutput contains the result of creating tasks from a file.
type CreateTasksFromFileOutput struct {
	Tasks []CreatedTask // Created tasks (or tasks that would be created in dry-run mode)
}

// CreateTasksFromFile is the use case for creating tasks from a file.
type CreateTasksFromFile struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewCreateTasksFromFile creates a new CreateTasksFromFile use case.
func NewCreateTasksFromFile(tasks domain.TaskRepository, logger domain.Logger) *CreateTasksFromFile {
	return &CreateTasksFromFile{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute creates tasks from the given file content.
// The whole file is validated before the first task is created.
func (uc *CreateTasksFromFile) Execute(_ context.Context, in CreateTasksFromFileInput) (*CreateTasksFromFileOutput, error) {
	drafts, err := domain.ParseTaskDrafts(in.Content)
	if err != nil {
		return nil, err
	}

	result := &CreateTasksFromFileOutput{
		Tasks: make([]CreatedTask, 0, len(drafts)),
	}

	for i, draft := range drafts {
		created := CreatedTask{Description: draft.Description, Status: draft.Status}
		if in.DryRun {
			result.Tasks = append(result.Tasks, created)
			continue
		}

		id, err := uc.tasks.Create(draft.Description)
		if err != nil {
			return result, fmt.Errorf("task %d: create task: %w", i+1, err)
		}
		if draft.Status != domain.StatusActive {
			status := draft.Status
			if err := uc.tasks.SetStatus([]int{id}, &status); err != nil {
				return result, fmt.Errorf("task %d: set status: %w", i+1, err)
			}
		}
		created.ID = id
		result.Tasks = append(result.Tasks, created)

		if uc.logger != nil {
			uc.logger.Info(id, "task", fmt.Sprintf("created from file: %q", draft.Description))
		}
	}

	return result, nil
}
