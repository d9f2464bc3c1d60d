package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/taskman/internal/controller"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case MsgDispatched:
		// Failures are already reported through the controller notice
		m.sync()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// A notice over the list swallows the next key.
	// Input modes show it inline instead.
	if m.ctl.Notice() != "" && !m.mode.IsInputMode() {
		return m, m.dispatch(controller.IntentDismissNotice{})
	}

	switch m.mode {
	case ModeList:
		return m.handleListMode(msg)
	case ModeNewTask:
		return m.handleNewTaskMode(msg)
	case ModeEdit:
		return m.handleEditMode(msg)
	case ModeConfirmDelete:
		return m.handleConfirmDeleteMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}

	return m, nil
}

// handleListMode handles keys on the main task list.
func (m *Model) handleListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.taskList.CursorUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.taskList.CursorDown()
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.taskList.PrevPage()
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.taskList.NextPage()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		task := m.CursorTask()
		if task == nil {
			return m, nil
		}
		return m, m.dispatch(controller.IntentToggle{ID: task.ID, Selected: !m.ctl.IsSelected(task.ID)})

	case key.Matches(msg, m.keys.New):
		return m, m.dispatch(controller.IntentOpenNewTask{})

	case key.Matches(msg, m.keys.Refresh):
		return m, m.dispatch(controller.IntentReload{})

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		return m, m.clearSelection()
	}

	if !m.ctl.ActionBarVisible() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ChangeStatus):
		return m, m.dispatch(controller.IntentChangeStatus{})

	case key.Matches(msg, m.keys.Delete):
		if m.confirmDelete {
			m.mode = ModeConfirmDelete
			return m, nil
		}
		return m, m.dispatch(controller.IntentDelete{})

	case key.Matches(msg, m.keys.Edit):
		return m, m.dispatch(controller.IntentOpenEdit{})
	}

	return m, nil
}

// clearSelection unchecks every selected task.
func (m *Model) clearSelection() tea.Cmd {
	ids := m.ctl.SelectedIDs()
	if len(ids) == 0 {
		return nil
	}
	intents := make([]controller.Intent, 0, len(ids))
	for _, id := range ids {
		intents = append(intents, controller.IntentToggle{ID: id, Selected: false})
	}
	return m.dispatch(intents...)
}

// handleNewTaskMode handles keys on the new task screen.
func (m *Model) handleNewTaskMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, m.dispatch(controller.IntentDismissNotice{}, controller.IntentCancelNewTask{})

	case key.Matches(msg, m.keys.Save):
		return m, m.dispatch(controller.IntentDismissNotice{}, controller.IntentSaveNewTask{Text: m.newInput.Value()})
	}

	var cmd tea.Cmd
	m.newInput, cmd = m.newInput.Update(msg)
	return m, cmd
}

// handleEditMode handles keys in the edit dialog.
func (m *Model) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, m.dispatch(controller.IntentDismissNotice{}, controller.IntentCancelEdit{})

	case key.Matches(msg, m.keys.Save):
		return m, m.dispatch(controller.IntentDismissNotice{}, controller.IntentSaveEdit{
			ID:          m.editTaskID,
			Description: m.editInput.Value(),
			Status:      m.editStatus,
		})

	case key.Matches(msg, m.keys.ToggleStatus):
		m.editStatus = m.editStatus.Toggle()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// handleConfirmDeleteMode handles keys in the delete confirmation dialog.
func (m *Model) handleConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N":
		m.mode = ModeList
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.mode = ModeList
		return m, m.dispatch(controller.IntentDelete{})
	}

	return m, nil
}

func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = ModeList
		return m, nil
	}

	return m, nil
}
