package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskman/internal/domain"
)

// ChangeStatusInput contains the parameters for changing task statuses.
type ChangeStatusInput struct {
	Status  *domain.Status // Target status (nil = toggle each task)
	TaskIDs []int          // Tasks to change
}

// ChangeStatusOutput contains the result of changing task statuses.
type ChangeStatusOutput struct {
	TaskIDs []int // Tasks that were changed, ascending and unique
}

// ChangeStatus flips or sets the status of a set of tasks.
type ChangeStatus struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewChangeStatus creates a new ChangeStatus use case.
func NewChangeStatus(tasks domain.TaskRepository, logger domain.Logger) *ChangeStatus {
	return &ChangeStatus{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute changes every task in one store operation.
// Without a target status each task is toggled from its own current status,
// so a mixed selection stays mixed. An empty ID list is a no-op.
func (uc *ChangeStatus) Execute(_ context.Context, in ChangeStatusInput) (*ChangeStatusOutput, error) {
	if len(in.TaskIDs) == 0 {
		return &ChangeStatusOutput{}, nil
	}

	if in.Status != nil && !in.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *in.Status)
	}

	ids := domain.UniqueIDs(in.TaskIDs)
	if err := uc.tasks.SetStatus(ids, in.Status); err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}

	if uc.logger != nil {
		action := "toggled"
		if in.Status != nil {
			action = "set to " + string(*in.Status)
		}
		for _, id := range ids {
			uc.logger.Info(id, "task", "status "+action)
		}
	}

	return &ChangeStatusOutput{TaskIDs: ids}, nil
}
