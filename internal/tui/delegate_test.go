package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/stretchr/testify/assert"

	"github.com/runoshun/taskman/internal/domain"
)

func TestEscapeNewlines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no newlines",
			input: "simple text",
			want:  "simple text",
		},
		{
			name:  "single LF",
			input: "line1\nline2",
			want:  "line1 line2",
		},
		{
			name:  "multiple LF",
			input: "line1\nline2\nline3",
			want:  "line1 line2 line3",
		},
		{
			name:  "CRLF",
			input: "line1\r\nline2",
			want:  "line1 line2",
		},
		{
			name:  "single CR",
			input: "line1\rline2",
			want:  "line1 line2",
		},
		{
			name:  "mixed newlines",
			input: "line1\nline2\r\nline3\rline4",
			want:  "line1 line2 line3 line4",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only newlines",
			input: "\n\r\n\r",
			want:  "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := escapeNewlines(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func renderRow(t *testing.T, task domain.Task, width int, checked bool) string {
	t.Helper()
	delegate := newTaskDelegate(DefaultStyles(), func(id int) bool { return checked && id == task.ID })
	l := list.New([]list.Item{taskItem{task: task}}, delegate, width, 5)
	var buf bytes.Buffer
	delegate.Render(&buf, l, 0, taskItem{task: task})
	return buf.String()
}

func TestTaskDelegate_Render(t *testing.T) {
	task := domain.Task{ID: 7, Description: "Buy milk", Status: domain.StatusActive}

	out := renderRow(t, task, 80, false)
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "  7")
	assert.Contains(t, out, "○")
	assert.Contains(t, out, "Buy milk")

	out = renderRow(t, task, 80, true)
	assert.Contains(t, out, "[x]")
}

func TestTaskDelegate_RenderCompleted(t *testing.T) {
	task := domain.Task{ID: 1, Description: "Done thing", Status: domain.StatusCompleted}
	out := renderRow(t, task, 80, false)
	assert.Contains(t, out, "✓")
}

func TestTaskDelegate_RenderTruncatesAndFlattens(t *testing.T) {
	task := domain.Task{
		ID:          1,
		Description: "first line\nsecond line " + strings.Repeat("long ", 40),
		Status:      domain.StatusActive,
	}
	out := renderRow(t, task, 40, false)
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "...")
}

func TestTaskDelegate_IgnoresForeignItems(t *testing.T) {
	delegate := newTaskDelegate(DefaultStyles(), nil)
	l := list.New(nil, delegate, 40, 5)
	var buf bytes.Buffer
	delegate.Render(&buf, l, 0, list.Item(nil))
	assert.Empty(t, buf.String())
}
