package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/taskman/internal/controller"
	"github.com/runoshun/taskman/internal/domain"
)

// Model is the main bubbletea model for taskman.
// Screen, selection and edit state live in the controller; the model only
// keeps what the terminal needs: cursor, inputs and overlays.
// Fields are ordered to minimize memory padding.
type Model struct {
	ctx           context.Context
	ctl           *controller.Controller
	keys          KeyMap
	styles        Styles
	help          help.Model
	taskList      list.Model
	newInput      textinput.Model
	editInput     textinput.Model
	editStatus    domain.Status
	editTaskID    int
	mode          Mode
	width         int
	height        int
	confirmDelete bool
}

// New creates a new TUI model driving ctl.
// A nil cfg uses the defaults.
func New(ctx context.Context, ctl *controller.Controller, cfg *domain.Config) *Model {
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	styles := DefaultStyles()

	ni := textinput.New()
	ni.Placeholder = "What needs to be done?"
	ni.CharLimit = 500
	ni.Width = 60

	ei := textinput.New()
	ei.Placeholder = "Description"
	ei.CharLimit = 500
	ei.Width = 50

	delegate := newTaskDelegate(styles, ctl.IsSelected)
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return &Model{
		ctx:           ctx,
		ctl:           ctl,
		keys:          DefaultKeyMap(),
		styles:        styles,
		help:          help.New(),
		taskList:      l,
		newInput:      ni,
		editInput:     ei,
		mode:          ModeList,
		confirmDelete: cfg.UI.ConfirmDelete,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.dispatch(controller.IntentReload{})
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// dispatch returns a command that applies intents in order.
// It stops at the first failure.
func (m *Model) dispatch(intents ...controller.Intent) tea.Cmd {
	return func() tea.Msg {
		for _, in := range intents {
			if err := m.ctl.Dispatch(m.ctx, in); err != nil {
				return MsgDispatched{Intents: intents, Err: err}
			}
		}
		return MsgDispatched{Intents: intents}
	}
}

// sync pulls controller state into the view after a dispatch.
func (m *Model) sync() {
	m.updateTaskList()

	switch {
	case m.ctl.Edit() != nil:
		if m.mode != ModeEdit {
			m.openEditDialog(m.ctl.Edit())
		}
	case m.ctl.Screen() == controller.ScreenNewTask:
		if m.mode != ModeNewTask {
			m.newInput.Reset()
			m.newInput.Focus()
		}
		m.mode = ModeNewTask
	default:
		m.editInput.Blur()
		m.newInput.Blur()
		// Help and confirm survive reloads; a cleared selection ends a confirm.
		switch {
		case m.mode == ModeHelp:
		case m.mode == ModeConfirmDelete && m.ctl.ActionBarVisible():
		default:
			m.mode = ModeList
		}
	}
}

func (m *Model) openEditDialog(req *controller.EditRequest) {
	m.editTaskID = req.Task.ID
	m.editStatus = req.Task.Status
	m.editInput.SetValue(req.Task.Description)
	m.editInput.CursorEnd()
	m.editInput.Focus()
	m.mode = ModeEdit
}

// updateTaskList refreshes list items from the controller snapshot,
// keeping the cursor in range.
func (m *Model) updateTaskList() {
	tasks := m.ctl.Tasks()
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t}
	}
	idx := m.taskList.Index()
	m.taskList.SetItems(items)
	if len(items) > 0 && idx >= len(items) {
		m.taskList.Select(len(items) - 1)
	}
}

// CursorTask returns the task under the cursor, or nil.
func (m *Model) CursorTask() *domain.Task {
	item := m.taskList.SelectedItem()
	if item == nil {
		return nil
	}
	ti, ok := item.(taskItem)
	if !ok {
		return nil
	}
	t := ti.task
	return &t
}

func (m *Model) updateLayoutSizes() {
	// Header, action bar, footer and app padding
	listHeight := m.height - 10
	if listHeight < 3 {
		listHeight = 3
	}
	listWidth := m.width - 4
	if listWidth < 20 {
		listWidth = 20
	}
	m.taskList.SetSize(listWidth, listHeight)
	m.newInput.Width = max(20, listWidth-10)
	m.editInput.Width = max(20, min(60, listWidth-16))
}

// Run starts the interactive TUI and blocks until the user quits.
func Run(ctx context.Context, ctl *controller.Controller, cfg *domain.Config) error {
	p := tea.NewProgram(New(ctx, ctl, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
