package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/taskman/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Text colors
	TextNormal   lipgloss.Color
	TextSelected lipgloss.Color

	// Status colors
	Active    lipgloss.Color
	Completed lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TextNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TextSelected: lipgloss.Color("#FFEAA7"), // Yellow (cursor)

	Active:    lipgloss.Color("#74B9FF"), // Light blue
	Completed: lipgloss.Color("#00B894"), // Green
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style

	// Task list
	Cursor        lipgloss.Style
	Checkbox      lipgloss.Style
	CheckboxOn    lipgloss.Style
	TaskID        lipgloss.Style
	TaskText      lipgloss.Style
	TaskCompleted lipgloss.Style
	EmptyState    lipgloss.Style

	// Status badges
	StatusActive    lipgloss.Style
	StatusCompleted lipgloss.Style

	// Action bar
	ActionBar      lipgloss.Style
	ActionBarCount lipgloss.Style

	// Help
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style
	Notice       lipgloss.Style

	// Input
	Input       lipgloss.Style
	InputPrompt lipgloss.Style

	// Error
	ErrorMsg lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Foreground(Colors.TextSelected).
			Bold(true),

		Checkbox: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		CheckboxOn: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		TaskID: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		TaskText: lipgloss.NewStyle().
			Foreground(Colors.TextNormal),

		// Completed tasks are green and struck through
		TaskCompleted: lipgloss.NewStyle().
			Foreground(Colors.Completed).
			Strikethrough(true),

		EmptyState: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true).
			PaddingLeft(2),

		StatusActive: lipgloss.NewStyle().
			Foreground(Colors.Active),

		StatusCompleted: lipgloss.NewStyle().
			Foreground(Colors.Completed),

		ActionBar: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Secondary),

		ActionBarCount: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		DialogPrompt: lipgloss.NewStyle(),

		Notice: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Warning).
			Foreground(Colors.Warning),

		Input: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
	}
}

// StatusStyle returns the style for a given status.
func (s Styles) StatusStyle(status domain.Status) lipgloss.Style {
	if status == domain.StatusCompleted {
		return s.StatusCompleted
	}
	return s.StatusActive
}

// TextStyle returns the description style for a given status.
func (s Styles) TextStyle(status domain.Status) lipgloss.Style {
	if status == domain.StatusCompleted {
		return s.TaskCompleted
	}
	return s.TaskText
}

// StatusIcon returns an icon for a given status.
func StatusIcon(status domain.Status) string {
	switch status {
	case domain.StatusActive:
		return "○"
	case domain.StatusCompleted:
		return "✓"
	default:
		return "?"
	}
}

// Checkbox returns the checkbox glyph for a list row.
func Checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
