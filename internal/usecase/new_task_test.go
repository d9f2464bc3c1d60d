package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskman/internal/domain"
	"github.com/runoshun/taskman/internal/testutil"
)

func TestNewTask_Execute(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	logger := &testutil.MockLogger{}
	uc := NewNewTask(repo, logger)

	// Execute
	out, err := uc.Execute(context.Background(), NewTaskInput{Description: "  Buy milk  "})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, out.TaskID)

	task := repo.Tasks[1]
	require.NotNil(t, task)
	assert.Equal(t, "Buy milk", task.Description)
	assert.Equal(t, domain.StatusActive, task.Status)

	require.Len(t, logger.Entries, 1)
	assert.Equal(t, 1, logger.Entries[0].TaskID)
	assert.Contains(t, logger.Entries[0].Msg, `"Buy milk"`)
}

func TestNewTask_Execute_EmptyDescription(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		repo := testutil.NewMockTaskRepository()
		uc := NewNewTask(repo, nil)

		out, err := uc.Execute(context.Background(), NewTaskInput{Description: input})

		assert.ErrorIs(t, err, domain.ErrEmptyDescription)
		assert.Nil(t, out)
		assert.Zero(t, repo.CreateCalls, "store must not be touched")
	}
}

func TestNewTask_Execute_StoreError(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.CreateErr = errors.New("disk full")
	uc := NewNewTask(repo, nil)

	_, err := uc.Execute(context.Background(), NewTaskInput{Description: "x"})

	assert.ErrorContains(t, err, "create task: disk full")
}
