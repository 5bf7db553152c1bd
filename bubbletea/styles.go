package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/gpterm/gpterm"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Prompt  lipgloss.Style
	UserMsg lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t gpterm.Theme) Styles {
	return Styles{
		Prompt:  lipgloss.NewStyle().Foreground(ansiColor(t.Prompt)).Bold(true),
		UserMsg: lipgloss.NewStyle().Foreground(ansiColor(t.Prompt)),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ansiColor(t.Warning)),
		Success: lipgloss.NewStyle().Foreground(ansiColor(t.Success)).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
