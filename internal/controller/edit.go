package controller

import "github.com/runoshun/taskman/internal/domain"

// EditRequest is handed to the edit dialog when it opens.
// Task is a copy; the dialog never mutates controller state directly.
type EditRequest struct {
	Task domain.Task
}

// EditOutcome tells how an edit dialog was closed.
type EditOutcome int

// Edit outcomes.
const (
	EditCancelled EditOutcome = iota
	EditSaved
)

// EditResult is the response of an edit dialog.
type EditResult struct {
	Task    domain.Task // Submitted values; meaningful only when Saved
	Outcome EditOutcome
}

// Saved returns a result carrying the submitted task.
func Saved(task domain.Task) EditResult {
	return EditResult{Task: task, Outcome: EditSaved}
}

// Cancelled returns a result that discards the dialog.
func Cancelled() EditResult {
	return EditResult{Outcome: EditCancelled}
}

// IsSaved reports whether the dialog was saved.
func (r EditResult) IsSaved() bool {
	return r.Outcome == EditSaved
}
