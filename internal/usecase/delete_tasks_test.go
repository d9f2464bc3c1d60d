package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskman/internal/testutil"
)

func TestDeleteTasks_Execute(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Seed("a", "b", "c")
	logger := &testutil.MockLogger{}
	uc := NewDeleteTasks(repo, logger)

	out, err := uc.Execute(context.Background(), DeleteTasksInput{TaskIDs: []int{1, 3, 42}})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 42}, out.TaskIDs)
	assert.Len(t, repo.Tasks, 1)
	assert.Contains(t, repo.Tasks, 2)
	assert.Len(t, logger.Entries, 3)
}

func TestDeleteTasks_Execute_DuplicateIDs(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Seed("a", "b")
	logger := &testutil.MockLogger{}

	out, err := NewDeleteTasks(repo, logger).Execute(context.Background(), DeleteTasksInput{TaskIDs: []int{2, 2, 2}})

	require.NoError(t, err)
	assert.Equal(t, []int{2}, out.TaskIDs)
	assert.Len(t, logger.Entries, 1)
	assert.Contains(t, repo.Tasks, 1)
}

func TestDeleteTasks_Execute_Empty(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.DeleteErr = errors.New("should not be called")

	out, err := NewDeleteTasks(repo, nil).Execute(context.Background(), DeleteTasksInput{})

	require.NoError(t, err)
	assert.Empty(t, out.TaskIDs)
}

func TestDeleteTasks_Execute_Error(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Seed("a")
	repo.DeleteErr = errors.New("locked")

	_, err := NewDeleteTasks(repo, nil).Execute(context.Background(), DeleteTasksInput{TaskIDs: []int{1}})

	assert.ErrorContains(t, err, "delete tasks: locked")
}
