package domain

import "strings"

// Status represents the state of a task.
type Status string

const (
	StatusActive    Status = "active"    // Open, still to be done
	StatusCompleted Status = "completed" // Done
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{StatusActive, StatusCompleted}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

// Toggle returns the opposite status.
// Unknown values are treated as active and become completed.
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusActive
	}
	return StatusCompleted
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// ParseStatus converts user input into a Status.
// Matching is case-insensitive and accepts "done" as an alias for completed.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "todo", "open":
		return StatusActive, nil
	case "completed", "complete", "done":
		return StatusCompleted, nil
	default:
		return "", ErrInvalidStatus
	}
}
