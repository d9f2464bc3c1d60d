// Package tui provides the terminal user interface for taskman.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeList          Mode = iota // Main task list
	ModeNewTask                   // New task entry screen
	ModeEdit                      // Edit dialog over the list
	ModeConfirmDelete             // Delete confirmation dialog
	ModeHelp                      // Help overlay
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeNewTask:
		return "new_task"
	case ModeEdit:
		return "edit"
	case ModeConfirmDelete:
		return "confirm_delete"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeNewTask, ModeEdit:
		return true
	case ModeList, ModeConfirmDelete, ModeHelp:
		return false
	}
	return false
}

// IsOverlay returns true if the mode draws a dialog over the list.
func (m Mode) IsOverlay() bool {
	return m == ModeEdit || m == ModeConfirmDelete
}
