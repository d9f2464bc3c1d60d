package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/runoshun/taskman/internal/domain"
)

type taskItem struct {
	task domain.Task
}

func (t taskItem) FilterValue() string {
	return t.task.Description
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// rowPrefixWidth is the width of "> [x] 123  ✓ " before the description.
const rowPrefixWidth = 14

type taskDelegate struct {
	isChecked func(id int) bool
	styles    Styles
}

func newTaskDelegate(styles Styles, isChecked func(id int) bool) taskDelegate {
	if isChecked == nil {
		isChecked = func(int) bool { return false }
	}
	return taskDelegate{styles: styles, isChecked: isChecked}
}

func (d taskDelegate) Height() int {
	return 1
}

func (d taskDelegate) Spacing() int {
	return 0
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	cursor := index == m.Index()
	checked := d.isChecked(task.ID)

	indicator := " "
	if cursor {
		indicator = d.styles.Cursor.Render(">")
	}

	box := d.styles.Checkbox.Render(Checkbox(false))
	if checked {
		box = d.styles.CheckboxOn.Render(Checkbox(true))
	}

	idPart := d.styles.TaskID.Render(fmt.Sprintf("%3d", task.ID))
	iconPart := d.styles.StatusStyle(task.Status).Render(StatusIcon(task.Status))

	maxLen := m.Width() - rowPrefixWidth
	if maxLen < 10 {
		maxLen = 10
	}
	desc := escapeNewlines(task.Description)
	if runewidth.StringWidth(desc) > maxLen {
		desc = runewidth.Truncate(desc, maxLen, "...")
	}

	textStyle := d.styles.TextStyle(task.Status)
	if cursor {
		textStyle = textStyle.Bold(true)
	}

	line := indicator + " " + box + " " + idPart + "  " + iconPart + " " + textStyle.Render(desc)
	_, _ = fmt.Fprint(w, line)
}
