package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskman/internal/domain"
)

// DeleteTasksInput contains the parameters for deleting tasks.
type DeleteTasksInput struct {
	TaskIDs []int // Tasks to delete; unknown IDs are ignored
}

// DeleteTasksOutput contains the result of deleting tasks.
type DeleteTasksOutput struct {
	TaskIDs []int // Tasks that were requested for deletion, ascending and unique
}

// DeleteTasks is the use case for deleting tasks.
type DeleteTasks struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewDeleteTasks creates a new DeleteTasks use case.
func NewDeleteTasks(tasks domain.TaskRepository, logger domain.Logger) *DeleteTasks {
	return &DeleteTasks{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute deletes the given tasks in one store operation.
func (uc *DeleteTasks) Execute(_ context.Context, in DeleteTasksInput) (*DeleteTasksOutput, error) {
	if len(in.TaskIDs) == 0 {
		return &DeleteTasksOutput{}, nil
	}

	ids := domain.UniqueIDs(in.TaskIDs)
	if err := uc.tasks.Delete(ids); err != nil {
		return nil, fmt.Errorf("delete tasks: %w", err)
	}

	if uc.logger != nil {
		for _, id := range ids {
			uc.logger.Info(id, "task", "deleted")
		}
	}

	return &DeleteTasksOutput{TaskIDs: ids}, nil
}
