// Package domain contains core business entities and interfaces.
package domain

import (
	"slices"
	"strings"
)

// Task represents a single to-do item.
// Fields are ordered to minimize memory padding.
type Task struct {
	Description string `json:"description" yaml:"description"` // Task text (required, trimmed)
	Status      Status `json:"status" yaml:"status"`           // active or completed
	ID          int    `json:"-" yaml:"-"`                     // Assigned by the store, never reused
}

// IsCompleted returns true if the task is marked completed.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Clone returns a copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// NormalizeDescription trims surrounding whitespace from a description.
// It returns ErrEmptyDescription if nothing is left.
func NormalizeDescription(description string) (string, error) {
	d := strings.TrimSpace(description)
	if d == "" {
		return "", ErrEmptyDescription
	}
	return d, nil
}

// UniqueIDs returns ids sorted ascending with duplicates removed.
// The input slice is not modified.
func UniqueIDs(ids []int) []int {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
