package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TaskDraft represents a task to be created from file input.
type TaskDraft struct {
	Description string
	Status      Status // Empty means active
}

// UnmarshalYAML accepts either a bare string or a {description, status} mapping.
func (d *TaskDraft) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.Description = node.Value
		return nil
	}

	var raw struct {
		Description string `yaml:"description"`
		Status      string `yaml:"status"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	d.Description = raw.Description
	if raw.Status != "" {
		status, err := ParseStatus(raw.Status)
		if err != nil {
			return fmt.Errorf("%w: %q", err, raw.Status)
		}
		d.Status = status
	}
	return nil
}

// ParseTaskDrafts parses a YAML list of tasks.
//
// Format:
//
//	- Buy milk
//	- description: Pay rent
//	  status: done
//
// Every draft is normalized; the first invalid entry fails the whole file.
func ParseTaskDrafts(content string) ([]TaskDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyFile
	}

	var drafts []TaskDraft
	if err := yaml.Unmarshal([]byte(content), &drafts); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	if len(drafts) == 0 {
		return nil, ErrNoTasksInFile
	}

	for i, d := range drafts {
		normalized, err := d.Normalize()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		drafts[i] = normalized
	}
	return drafts, nil
}

// Normalize validates the draft and fills in defaults.
func (d TaskDraft) Normalize() (TaskDraft, error) {
	desc, err := NormalizeDescription(d.Description)
	if err != nil {
		return TaskDraft{}, err
	}
	status := d.Status
	if status == "" {
		status = StatusActive
	}
	if !status.IsValid() {
		return TaskDraft{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return TaskDraft{Description: desc, Status: status}, nil
}
