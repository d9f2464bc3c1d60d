// Package controller holds the task list state machine shared by interactive front ends.
// Front ends translate input into Intents and render the state read back
// from the Controller; they never talk to the store themselves.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/runoshun/taskman/internal/domain"
	"github.com/runoshun/taskman/internal/usecase"
)

// Screen identifies the top-level screen.
type Screen int

// Screens.
const (
	ScreenMainList Screen = iota
	ScreenNewTask
)

// String returns the string representation of the screen.
func (s Screen) String() string {
	switch s {
	case ScreenMainList:
		return "main-list"
	case ScreenNewTask:
		return "new-task"
	default:
		return "unknown"
	}
}

// User-visible notices.
const (
	NoticeSelectOne        = "Please select only one task to edit."
	NoticeTaskNotFound     = "Task not found. The list has been refreshed."
	NoticeEmptyDescription = "Description cannot be empty."
)

// UseCases are the operations the Controller drives.
type UseCases struct {
	NewTask      *usecase.NewTask
	ListTasks    *usecase.ListTasks
	ShowTask     *usecase.ShowTask
	ChangeStatus *usecase.ChangeStatus
	EditTask     *usecase.EditTask
	DeleteTasks  *usecase.DeleteTasks
}

// Controller owns the screen, the task list snapshot, the selection
// and the edit dialog. Every mutation is followed by a full reload,
// which also clears the selection.
// Fields are ordered to minimize memory padding.
type Controller struct {
	uc        UseCases
	logger    domain.Logger
	edit      *EditRequest
	selection domain.Selection
	notice    string
	tasks     []*domain.Task
	screen    Screen
	mu        sync.Mutex
}

// New creates a Controller on the main list with an empty snapshot.
// Dispatch IntentReload to load tasks.
func New(uc UseCases, logger domain.Logger) *Controller {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Controller{
		uc:     uc,
		logger: logger,
		screen: ScreenMainList,
	}
}

// Dispatch applies an intent.
// Failures are turned into a notice; the returned error is the same
// failure for callers that want to log or test it.
func (c *Controller) Dispatch(ctx context.Context, in Intent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch in := in.(type) {
	case IntentOpenNewTask:
		if c.screen == ScreenMainList && c.edit == nil {
			c.screen = ScreenNewTask
		}
		return nil
	case IntentSaveNewTask:
		return c.saveNewTask(ctx, in.Text)
	case IntentCancelNewTask:
		c.screen = ScreenMainList
		return nil
	case IntentToggle:
		c.toggle(in.ID, in.Selected)
		return nil
	case IntentChangeStatus:
		return c.changeStatus(ctx)
	case IntentDelete:
		return c.deleteSelected(ctx)
	case IntentOpenEdit:
		return c.openEdit(ctx)
	case IntentSaveEdit:
		return c.resolveEdit(ctx, Saved(domain.Task{ID: in.ID, Description: in.Description, Status: in.Status}))
	case IntentCancelEdit:
		return c.resolveEdit(ctx, Cancelled())
	case IntentReload:
		return c.reload(ctx)
	case IntentDismissNotice:
		c.notice = ""
		return nil
	default:
		return fmt.Errorf("unknown intent %T", in)
	}
}

// ResolveEdit closes the edit dialog with the given result.
func (c *Controller) ResolveEdit(ctx context.Context, result EditResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveEdit(ctx, result)
}

// Screen returns the current screen.
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Tasks returns a copy of the last loaded task list.
func (c *Controller) Tasks() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks := make([]domain.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		tasks = append(tasks, *t)
	}
	return tasks
}

// IsSelected reports whether the task is checked.
func (c *Controller) IsSelected(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Contains(id)
}

// SelectedIDs returns the checked task IDs in ascending order.
func (c *Controller) SelectedIDs() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.IDs()
}

// ActionBarVisible reports whether the bulk action bar should be shown.
func (c *Controller) ActionBarVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.selection.IsEmpty()
}

// Edit returns the open edit request, or nil if the dialog is closed.
func (c *Controller) Edit() *EditRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.edit == nil {
		return nil
	}
	req := *c.edit
	return &req
}

// Notice returns the message to show the user, or "".
func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

func (c *Controller) saveNewTask(ctx context.Context, text string) error {
	if c.screen != ScreenNewTask {
		return nil
	}

	_, err := c.uc.NewTask.Execute(ctx, usecase.NewTaskInput{Description: text})
	if errors.Is(err, domain.ErrEmptyDescription) {
		return nil // Stay on the entry screen
	}
	if err != nil {
		c.fail(err)
		return err
	}

	c.notice = ""
	c.screen = ScreenMainList
	return c.reload(ctx)
}

func (c *Controller) toggle(id int, selected bool) {
	for _, t := range c.tasks {
		if t.ID == id {
			c.selection.Toggle(id, selected)
			return
		}
	}
}

func (c *Controller) changeStatus(ctx context.Context) error {
	if c.selection.IsEmpty() {
		return nil
	}

	_, err := c.uc.ChangeStatus.Execute(ctx, usecase.ChangeStatusInput{TaskIDs: c.selection.IDs()})
	if err != nil {
		return c.failAndReload(ctx, err)
	}
	return c.reload(ctx)
}

func (c *Controller) deleteSelected(ctx context.Context) error {
	if c.selection.IsEmpty() {
		return nil
	}

	_, err := c.uc.DeleteTasks.Execute(ctx, usecase.DeleteTasksInput{TaskIDs: c.selection.IDs()})
	if err != nil {
		return c.failAndReload(ctx, err)
	}
	return c.reload(ctx)
}

func (c *Controller) openEdit(ctx context.Context) error {
	id, ok := c.selection.Single()
	if !ok {
		c.notice = NoticeSelectOne
		return domain.ErrInvalidSelection
	}

	out, err := c.uc.ShowTask.Execute(ctx, usecase.ShowTaskInput{TaskID: id})
	if err != nil {
		return c.failAndReload(ctx, err)
	}

	c.edit = &EditRequest{Task: *out.Task}
	return nil
}

func (c *Controller) resolveEdit(ctx context.Context, result EditResult) error {
	if c.edit == nil {
		return nil
	}

	if !result.IsSaved() {
		c.edit = nil
		return nil
	}

	if result.Task.ID != 0 && result.Task.ID != c.edit.Task.ID {
		return fmt.Errorf("edit result for task #%d does not match open task #%d", result.Task.ID, c.edit.Task.ID)
	}

	desc := result.Task.Description
	status := result.Task.Status
	_, err := c.uc.EditTask.Execute(ctx, usecase.EditTaskInput{
		TaskID:      c.edit.Task.ID,
		Description: &desc,
		Status:      &status,
	})
	switch {
	case err == nil:
		c.edit = nil
		return c.reload(ctx)
	case errors.Is(err, domain.ErrEmptyDescription):
		c.notice = NoticeEmptyDescription // Dialog stays open
		return err
	case errors.Is(err, domain.ErrTaskNotFound):
		c.edit = nil
		return c.failAndReload(ctx, err)
	default:
		c.fail(err)
		return err
	}
}

// reload replaces the snapshot and clears the selection.
// On failure the old snapshot and selection are kept.
func (c *Controller) reload(ctx context.Context) error {
	out, err := c.uc.ListTasks.Execute(ctx, usecase.ListTasksInput{})
	if err != nil {
		c.fail(err)
		return err
	}
	c.tasks = out.Tasks
	c.selection.Clear()
	return nil
}

// fail records a generic notice for err.
func (c *Controller) fail(err error) {
	if errors.Is(err, domain.ErrTaskNotFound) {
		c.notice = NoticeTaskNotFound
	} else {
		c.notice = "Something went wrong: " + err.Error()
	}
	c.logger.Warn(0, "controller", err.Error())
}

// failAndReload records err and refreshes the list so the user sees current data.
func (c *Controller) failAndReload(ctx context.Context, err error) error {
	c.fail(err)
	if reloadErr := c.reload(ctx); reloadErr != nil {
		return errors.Join(err, reloadErr)
	}
	return err
}
