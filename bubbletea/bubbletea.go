// Package bubbletea provides the full-screen Bubble Tea frontend for gpterm.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gpterm/gpterm"
)

// TurnFunc runs one chat turn for input, emitting reply characters to sink.
// It blocks until the turn reaches a terminal state.
type TurnFunc func(ctx context.Context, input string, sink gpterm.Sink) (gpterm.TurnResult, error)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits and returns the fatal turn error that ended it, if any. When ctx is
// cancelled the program quits.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}

// CharMsg delivers one reply character to the model.
type CharMsg struct {
	Char string
}

// TurnDoneMsg signals that the running turn has finished.
type TurnDoneMsg struct {
	Result gpterm.TurnResult
	Err    error
}
