package controller

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskman/internal/domain"
	"github.com/runoshun/taskman/internal/infra/sqlitestore"
	"github.com/runoshun/taskman/internal/testutil"
	"github.com/runoshun/taskman/internal/usecase"
)

func newUseCases(repo domain.TaskRepository) UseCases {
	return UseCases{
		NewTask:      usecase.NewNewTask(repo, nil),
		ListTasks:    usecase.NewListTasks(repo),
		ShowTask:     usecase.NewShowTask(repo),
		ChangeStatus: usecase.NewChangeStatus(repo, nil),
		EditTask:     usecase.NewEditTask(repo, nil),
		DeleteTasks:  usecase.NewDeleteTasks(repo, nil),
	}
}

// newTestController returns a loaded controller over a mock repository seeded with descriptions.
func newTestController(t *testing.T, descriptions ...string) (*Controller, *testutil.MockTaskRepository) {
	t.Helper()
	repo := testutil.NewMockTaskRepository()
	repo.Seed(descriptions...)
	c := New(newUseCases(repo), nil)
	require.NoError(t, c.Dispatch(context.Background(), IntentReload{}))
	return c, repo
}

func dispatch(t *testing.T, c *Controller, intents ...Intent) {
	t.Helper()
	for _, in := range intents {
		require.NoError(t, c.Dispatch(context.Background(), in))
	}
}

func TestController_NewTaskFlow(t *testing.T) {
	c, repo := newTestController(t)
	assert.Equal(t, ScreenMainList, c.Screen())

	dispatch(t, c, IntentOpenNewTask{})
	assert.Equal(t, ScreenNewTask, c.Screen())

	// Blank text is a no-op that stays on the entry screen
	dispatch(t, c, IntentSaveNewTask{Text: "   "})
	assert.Equal(t, ScreenNewTask, c.Screen())
	assert.Empty(t, repo.Tasks)
	assert.Empty(t, c.Notice())

	dispatch(t, c, IntentSaveNewTask{Text: " Buy milk "})
	assert.Equal(t, ScreenMainList, c.Screen())
	assert.Equal(t, []domain.Task{{ID: 1, Description: "Buy milk", Status: domain.StatusActive}}, c.Tasks())
}

func TestController_CancelNewTask(t *testing.T) {
	c, repo := newTestController(t)

	dispatch(t, c, IntentOpenNewTask{}, IntentCancelNewTask{})

	assert.Equal(t, ScreenMainList, c.Screen())
	assert.Zero(t, repo.CreateCalls)
}

func TestController_SaveNewTaskOutsideEntryScreenIsIgnored(t *testing.T) {
	c, repo := newTestController(t)

	dispatch(t, c, IntentSaveNewTask{Text: "x"})

	assert.Zero(t, repo.CreateCalls)
}

func TestController_SaveNewTaskStoreError(t *testing.T) {
	c, repo := newTestController(t)
	repo.CreateErr = errors.New("disk full")

	dispatch(t, c, IntentOpenNewTask{})
	err := c.Dispatch(context.Background(), IntentSaveNewTask{Text: "x"})

	require.Error(t, err)
	assert.Equal(t, ScreenNewTask, c.Screen())
	assert.Equal(t, "Something went wrong: create task: disk full", c.Notice())

	dispatch(t, c, IntentDismissNotice{})
	assert.Empty(t, c.Notice())
}

func TestController_SaveNewTaskRetryClearsNotice(t *testing.T) {
	c, repo := newTestController(t)
	repo.CreateErr = errors.New("disk full")

	dispatch(t, c, IntentOpenNewTask{})
	require.Error(t, c.Dispatch(context.Background(), IntentSaveNewTask{Text: "x"}))
	require.NotEmpty(t, c.Notice())

	repo.CreateErr = nil
	dispatch(t, c, IntentSaveNewTask{Text: "x"})

	assert.Equal(t, ScreenMainList, c.Screen())
	assert.Empty(t, c.Notice())
	assert.Len(t, c.Tasks(), 1)
}

func TestController_ActionBarFollowsSelection(t *testing.T) {
	c, _ := newTestController(t, "a", "b")
	assert.False(t, c.ActionBarVisible())

	dispatch(t, c, IntentToggle{ID: 1, Selected: true})
	assert.True(t, c.ActionBarVisible())
	assert.True(t, c.IsSelected(1))

	dispatch(t, c, IntentToggle{ID: 2, Selected: true}, IntentToggle{ID: 1, Selected: false})
	assert.True(t, c.ActionBarVisible())
	assert.Equal(t, []int{2}, c.SelectedIDs())

	dispatch(t, c, IntentToggle{ID: 2, Selected: false})
	assert.False(t, c.ActionBarVisible())
}

func TestController_ToggleUnknownTaskIgnored(t *testing.T) {
	c, _ := newTestController(t, "a")

	dispatch(t, c, IntentToggle{ID: 99, Selected: true})

	assert.False(t, c.ActionBarVisible())
}

func TestController_ChangeStatusTogglesEachSelectedTask(t *testing.T) {
	c, repo := newTestController(t, "a", "b", "c")
	repo.Tasks[2].Status = domain.StatusCompleted
	dispatch(t, c, IntentReload{})

	dispatch(t, c,
		IntentToggle{ID: 1, Selected: true},
		IntentToggle{ID: 2, Selected: true},
		IntentChangeStatus{},
	)

	tasks := c.Tasks()
	assert.Equal(t, domain.StatusCompleted, tasks[0].Status)
	assert.Equal(t, domain.StatusActive, tasks[1].Status)
	assert.Equal(t, domain.StatusActive, tasks[2].Status)
	assert.False(t, c.ActionBarVisible())
	assert.Empty(t, c.SelectedIDs())
}

func TestController_DeleteSelected(t *testing.T) {
	c, repo := newTestController(t, "a", "b", "c")

	dispatch(t, c,
		IntentToggle{ID: 1, Selected: true},
		IntentToggle{ID: 3, Selected: true},
		IntentDelete{},
	)

	assert.Equal(t, []domain.Task{{ID: 2, Description: "b", Status: domain.StatusActive}}, c.Tasks())
	assert.Len(t, repo.Tasks, 1)
	assert.False(t, c.ActionBarVisible())
}

func TestController_BulkActionsWithEmptySelectionAreNoops(t *testing.T) {
	c, repo := newTestController(t, "a")
	repo.SetStatusErr = errors.New("should not be called")
	repo.DeleteErr = errors.New("should not be called")

	dispatch(t, c, IntentChangeStatus{}, IntentDelete{})

	assert.Len(t, repo.Tasks, 1)
	assert.Empty(t, c.Notice())
}

func TestController_OpenEditRequiresExactlyOneSelection(t *testing.T) {
	for _, selected := range [][]int{nil, {1, 2}} {
		c, repo := newTestController(t, "a", "b")
		for _, id := range selected {
			dispatch(t, c, IntentToggle{ID: id, Selected: true})
		}

		err := c.Dispatch(context.Background(), IntentOpenEdit{})

		assert.ErrorIs(t, err, domain.ErrInvalidSelection)
		assert.Equal(t, NoticeSelectOne, c.Notice())
		assert.Nil(t, c.Edit())
		assert.Len(t, c.SelectedIDs(), len(selected), "selection is left as it was")
		assert.Equal(t, "a", repo.Tasks[1].Description)
		assert.Equal(t, ScreenMainList, c.Screen())
	}
}

func TestController_EditSave(t *testing.T) {
	c, repo := newTestController(t, "a", "b")
	dispatch(t, c, IntentToggle{ID: 1, Selected: true}, IntentOpenEdit{})

	req := c.Edit()
	require.NotNil(t, req)
	assert.Equal(t, domain.Task{ID: 1, Description: "a", Status: domain.StatusActive}, req.Task)
	assert.Equal(t, ScreenMainList, c.Screen(), "edit dialog does not change the screen")

	dispatch(t, c, IntentSaveEdit{ID: 1, Description: "a (edited)", Status: domain.StatusCompleted})

	assert.Nil(t, c.Edit())
	assert.Equal(t, []domain.Task{
		{ID: 1, Description: "a (edited)", Status: domain.StatusCompleted},
		{ID: 2, Description: "b", Status: domain.StatusActive},
	}, c.Tasks())
	assert.Equal(t, "b", repo.Tasks[2].Description)
	assert.False(t, c.ActionBarVisible())
}

func TestController_EditCancel(t *testing.T) {
	c, repo := newTestController(t, "a")
	dispatch(t, c, IntentToggle{ID: 1, Selected: true}, IntentOpenEdit{})

	require.NoError(t, c.ResolveEdit(context.Background(), Cancelled()))

	assert.Nil(t, c.Edit())
	assert.Equal(t, "a", repo.Tasks[1].Description)
	assert.True(t, c.IsSelected(1), "cancel keeps the selection")
}

func TestController_EditSaveRejectsEmptyDescription(t *testing.T) {
	c, repo := newTestController(t, "a")
	dispatch(t, c, IntentToggle{ID: 1, Selected: true}, IntentOpenEdit{})

	err := c.ResolveEdit(context.Background(), Saved(domain.Task{ID: 1, Description: "  ", Status: domain.StatusActive}))

	assert.ErrorIs(t, err, domain.ErrEmptyDescription)
	assert.NotNil(t, c.Edit(), "dialog stays open")
	assert.Equal(t, NoticeEmptyDescription, c.Notice())
	assert.Equal(t, "a", repo.Tasks[1].Description)
}

func TestController_EditTaskDeletedMeanwhile(t *testing.T) {
	c, repo := newTestController(t, "a", "b")
	dispatch(t, c, IntentToggle{ID: 1, Selected: true}, IntentOpenEdit{})
	delete(repo.Tasks, 1)

	err := c.Dispatch(context.Background(), IntentSaveEdit{ID: 1, Description: "x", Status: domain.StatusActive})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Equal(t, NoticeTaskNotFound, c.Notice())
	assert.Nil(t, c.Edit())
	assert.Equal(t, []domain.Task{{ID: 2, Description: "b", Status: domain.StatusActive}}, c.Tasks())
}

func TestController_OpenEditTaskDeletedMeanwhile(t *testing.T) {
	c, repo := newTestController(t, "a")
	dispatch(t, c, IntentToggle{ID: 1, Selected: true})
	delete(repo.Tasks, 1)

	err := c.Dispatch(context.Background(), IntentOpenEdit{})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Equal(t, NoticeTaskNotFound, c.Notice())
	assert.Nil(t, c.Edit())
	assert.Empty(t, c.Tasks())
}

func TestController_EditResultForOtherTaskRejected(t *testing.T) {
	c, repo := newTestController(t, "a", "b")
	dispatch(t, c, IntentToggle{ID: 1, Selected: true}, IntentOpenEdit{})

	err := c.Dispatch(context.Background(), IntentSaveEdit{ID: 2, Description: "x", Status: domain.StatusActive})

	assert.Error(t, err)
	assert.Equal(t, "b", repo.Tasks[2].Description)
	assert.NotNil(t, c.Edit())
}

func TestController_ChangeStatusMissingTask(t *testing.T) {
	c, repo := newTestController(t, "a", "b")
	dispatch(t, c, IntentToggle{ID: 1, Selected: true}, IntentToggle{ID: 2, Selected: true})
	delete(repo.Tasks, 2)

	err := c.Dispatch(context.Background(), IntentChangeStatus{})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Equal(t, NoticeTaskNotFound, c.Notice())
	assert.Equal(t, domain.StatusActive, repo.Tasks[1].Status, "no partial mutation")
	assert.Len(t, c.Tasks(), 1)
	assert.False(t, c.ActionBarVisible())
}

func TestController_ReloadErrorKeepsSnapshot(t *testing.T) {
	c, repo := newTestController(t, "a")
	dispatch(t, c, IntentToggle{ID: 1, Selected: true})
	repo.ListErr = errors.New("locked")

	err := c.Dispatch(context.Background(), IntentReload{})

	require.Error(t, err)
	assert.Equal(t, "Something went wrong: list tasks: locked", c.Notice())
	assert.Len(t, c.Tasks(), 1)
	assert.True(t, c.IsSelected(1))
}

func TestController_TasksReturnsCopies(t *testing.T) {
	c, repo := newTestController(t, "a")

	tasks := c.Tasks()
	tasks[0].Description = "mutated"

	assert.Equal(t, "a", c.Tasks()[0].Description)
	assert.Equal(t, "a", repo.Tasks[1].Description)
}

func TestController_UnknownIntent(t *testing.T) {
	c, _ := newTestController(t)
	assert.Error(t, c.Dispatch(context.Background(), nil))
}

func TestScreen_String(t *testing.T) {
	assert.Equal(t, "main-list", ScreenMainList.String())
	assert.Equal(t, "new-task", ScreenNewTask.String())
	assert.Equal(t, "unknown", Screen(9).String())
}

// End-to-end session on the SQLite store: add, select, complete, delete.
func TestController_WithSQLiteStore(t *testing.T) {
	store, err := sqlitestore.Open(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	_, err = store.Initialize()
	require.NoError(t, err)

	c := New(newUseCases(store), nil)
	dispatch(t, c, IntentReload{}, IntentOpenNewTask{}, IntentSaveNewTask{Text: "Buy milk"})
	assert.Equal(t, []domain.Task{{ID: 1, Description: "Buy milk", Status: domain.StatusActive}}, c.Tasks())

	dispatch(t, c, IntentToggle{ID: 1, Selected: true}, IntentChangeStatus{})
	assert.Equal(t, []domain.Task{{ID: 1, Description: "Buy milk", Status: domain.StatusCompleted}}, c.Tasks())
	assert.Empty(t, c.SelectedIDs())

	dispatch(t, c, IntentToggle{ID: 1, Selected: true}, IntentDelete{})
	assert.Empty(t, c.Tasks())
	assert.False(t, c.ActionBarVisible())
}
