package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/taskman/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeNewTask:
		content = m.viewNewTask()
	case ModeList, ModeEdit, ModeConfirmDelete:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the main task list with its overlays.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if len(m.taskList.Items()) == 0 {
		b.WriteString(m.viewEmptyState())
	} else {
		b.WriteString(m.taskList.View())
	}
	b.WriteString("\n")

	if m.ctl.ActionBarVisible() {
		b.WriteString("\n")
		b.WriteString(m.viewActionBar())
	}

	if m.mode.IsOverlay() {
		b.WriteString("\n")
		b.WriteString(m.viewOverlay())
	} else if notice := m.ctl.Notice(); notice != "" {
		b.WriteString("\n")
		b.WriteString(m.viewNotice(notice))
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	return b.String()
}

// viewOverlay renders the dialog for an overlay mode.
func (m *Model) viewOverlay() string {
	if m.mode == ModeConfirmDelete {
		return m.viewConfirmDialog()
	}
	return m.viewEditDialog()
}

// viewHeader renders the header with "Tasks" and counts.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("Tasks")

	tasks := m.ctl.Tasks()
	done := 0
	for _, t := range tasks {
		if t.IsCompleted() {
			done++
		}
	}
	countText := fmt.Sprintf("%d of %d completed", done, len(tasks))
	rightText := lipgloss.NewStyle().Foreground(Colors.Muted).Render(countText)

	headerWidth := m.width - 6 // padding
	if headerWidth < 40 {
		headerWidth = 40
	}
	spacing := headerWidth - lipgloss.Width(title) - lipgloss.Width(rightText)
	if spacing < 1 {
		spacing = 1
	}

	return m.styles.Header.Render(title + strings.Repeat(" ", spacing) + rightText)
}

func (m *Model) viewEmptyState() string {
	return m.styles.EmptyState.Render("No tasks yet. Press n to add one.")
}

// viewActionBar renders the bulk actions for the checked tasks.
func (m *Model) viewActionBar() string {
	count := len(m.ctl.SelectedIDs())
	parts := []string{m.styles.ActionBarCount.Render(fmt.Sprintf("%d selected", count))}
	for _, b := range m.keys.ActionBarHelp() {
		h := b.Help()
		parts = append(parts, m.styles.FooterKey.Render(h.Key)+" "+h.Desc)
	}
	return m.styles.ActionBar.Render(strings.Join(parts, "   "))
}

// viewNewTask renders the new task entry screen.
func (m *Model) viewNewTask() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(m.styles.HeaderText.Render("New Task")))
	b.WriteString("\n")
	b.WriteString(m.styles.InputPrompt.Render("Description"))
	b.WriteString("\n")
	b.WriteString(m.styles.Input.Render(m.newInput.View()))
	b.WriteString("\n")

	if notice := m.ctl.Notice(); notice != "" {
		b.WriteString(m.styles.ErrorMsg.Render(notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(
		m.styles.FooterKey.Render("enter") + " save  " +
			m.styles.FooterKey.Render("esc") + " cancel",
	))
	return b.String()
}

// viewEditDialog renders the modal for the single selected task.
func (m *Model) viewEditDialog() string {
	var b strings.Builder

	b.WriteString(m.styles.DialogTitle.Render(fmt.Sprintf("Edit Task #%d", m.editTaskID)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.InputPrompt.Render("Description"))
	b.WriteString("\n")
	b.WriteString(m.styles.Input.Render(m.editInput.View()))
	b.WriteString("\n\n")

	completed := m.editStatus == domain.StatusCompleted
	b.WriteString(m.styles.InputPrompt.Render("Completed "))
	b.WriteString(m.styles.StatusStyle(m.editStatus).Render(Checkbox(completed) + " " + m.editStatus.Display()))
	b.WriteString("\n")

	if notice := m.ctl.Notice(); notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorMsg.Render(notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(
		m.styles.FooterKey.Render("enter") + " save  " +
			m.styles.FooterKey.Render("tab") + " toggle completed  " +
			m.styles.FooterKey.Render("esc") + " cancel",
	))

	return m.styles.Dialog.Render(b.String())
}

// viewConfirmDialog renders the delete confirmation.
func (m *Model) viewConfirmDialog() string {
	count := len(m.ctl.SelectedIDs())
	noun := "task"
	if count != 1 {
		noun = "tasks"
	}

	title := m.styles.DialogTitle.Foreground(Colors.Error).Render("Delete")
	prompt := m.styles.DialogPrompt.Render(fmt.Sprintf("Delete %d selected %s?", count, noun))
	hint := m.styles.Footer.Render(
		m.styles.FooterKey.Render("y") + " confirm  " +
			m.styles.FooterKey.Render("n") + " cancel",
	)

	return m.styles.Dialog.
		BorderForeground(Colors.Error).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", prompt, "", hint))
}

func (m *Model) viewNotice(notice string) string {
	return m.styles.Notice.Render(notice + "  " + m.styles.Footer.Render("(press any key)"))
}

func (m *Model) viewFooter() string {
	if m.mode != ModeList {
		// Hints are shown in the dialogs themselves
		return ""
	}
	return m.styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// viewHelp renders the help view.
func (m *Model) viewHelp() string {
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")
	body := m.help.FullHelpView(m.keys.FullHelp())

	return m.styles.Help.
		BorderForeground(Colors.Primary).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))
}
