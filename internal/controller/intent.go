package controller

import "github.com/runoshun/taskman/internal/domain"

// Intent is a user action dispatched to the Controller.
// This is a sealed interface - only types in this package implement it.
type Intent interface {
	intent()
}

// IntentOpenNewTask switches from the list to the new-task screen.
type IntentOpenNewTask struct{}

// IntentSaveNewTask creates a task from Text. Blank text is ignored.
type IntentSaveNewTask struct {
	Text string
}

// IntentCancelNewTask returns to the list without creating anything.
type IntentCancelNewTask struct{}

// IntentToggle checks or unchecks a task in the list.
type IntentToggle struct {
	ID       int
	Selected bool
}

// IntentChangeStatus flips the status of every selected task.
type IntentChangeStatus struct{}

// IntentDelete removes every selected task.
type IntentDelete struct{}

// IntentOpenEdit opens the edit dialog for the single selected task.
type IntentOpenEdit struct{}

// IntentSaveEdit resolves the open edit dialog as Saved.
type IntentSaveEdit struct {
	Description string
	Status      domain.Status
	ID          int
}

// IntentCancelEdit resolves the open edit dialog as Cancelled.
type IntentCancelEdit struct{}

// IntentReload re-reads the task list from the store.
type IntentReload struct{}

// IntentDismissNotice clears the current notice.
type IntentDismissNotice struct{}

func (IntentOpenNewTask) intent()   {}
func (IntentSaveNewTask) intent()   {}
func (IntentCancelNewTask) intent() {}
func (IntentToggle) intent()        {}
func (IntentChangeStatus) intent()  {}
func (IntentDelete) intent()        {}
func (IntentOpenEdit) intent()      {}
func (IntentSaveEdit) intent()      {}
func (IntentCancelEdit) intent()    {}
func (IntentReload) intent()        {}
func (IntentDismissNotice) intent() {}
