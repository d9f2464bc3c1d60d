package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidSelection = errors.New("select only one task to edit")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrNotInitialized   = errors.New("task store not initialized (run 'taskman init' first)")
	ErrConfigExists     = errors.New("config file already exists")
	ErrUnknownBackend   = errors.New("unknown store backend")
	ErrNotGitRepository = errors.New("not a git repository")
	ErrEmptyFile        = errors.New("file is empty")
	ErrNoTasksInFile    = errors.New("no tasks found in file")
)
