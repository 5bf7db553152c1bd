// Package terminal implements the plain line-oriented frontend: a liner
// prompt for input, character-at-a-time output and the read-send loop.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/gpterm/gpterm"
)

// Interface compliance check.
var _ gpterm.Sink = (*Printer)(nil)

// Printer writes assistant output and styled notices.
type Printer struct {
	out    io.Writer
	errOut io.Writer

	title    lipgloss.Style
	muted    lipgloss.Style
	warning  lipgloss.Style
	errStyle lipgloss.Style
}

// NewPrinter creates a Printer. Replies and notices go to out, diagnostics
// to errOut.
func NewPrinter(out, errOut io.Writer, theme gpterm.Theme) *Printer {
	return &Printer{
		out:      out,
		errOut:   errOut,
		title:    lipgloss.NewStyle().Foreground(color(theme.Success)).Bold(true),
		muted:    lipgloss.NewStyle().Foreground(color(theme.Muted)),
		warning:  lipgloss.NewStyle().Foreground(color(theme.Warning)),
		errStyle: lipgloss.NewStyle().Foreground(color(theme.Error)).Bold(true),
	}
}

func color(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// Emit writes one character of the reply unbuffered.
func (p *Printer) Emit(char string) error {
	_, err := io.WriteString(p.out, char)
	return err
}

// Banner describes the session for the intro message.
type Banner struct {
	Model   string
	LogDir  string // empty when conversations are not stored
	Context bool
}

// Lines returns the intro message, title first.
func (b Banner) Lines() []string {
	lines := []string{"Welcome to gpterm!"}
	if b.LogDir != "" {
		lines = append(lines, "Storing conversations in "+strconv.Quote(b.LogDir))
	}
	if b.Context {
		lines = append(lines, "Context mode is enabled")
	}
	return append(lines, "Using "+b.Model+" model")
}

// Banner prints the intro message.
func (p *Printer) Banner(b Banner) {
	for i, line := range b.Lines() {
		if i == 0 {
			fmt.Fprintln(p.out, p.title.Render(line))
			continue
		}
		fmt.Fprintln(p.out, p.muted.Render(line))
	}
	fmt.Fprintln(p.out)
}

// EndReply terminates the reply line.
func (p *Printer) EndReply() {
	fmt.Fprintln(p.out)
}

// Notice prints a hint such as the exit confirmation.
func (p *Printer) Notice(msg string) {
	fmt.Fprintln(p.out, p.warning.Render(msg))
}

// Goodbye prints the farewell.
func (p *Printer) Goodbye() {
	fmt.Fprintln(p.out, "Goodbye!")
}

// Error reports err according to its class. Server errors print only their
// kind, the way the endpoint named it; corrupt payloads print the raw frame.
func (p *Printer) Error(err error) {
	var serverErr *gpterm.ServerError
	var decodeErr *gpterm.DecodeError
	switch {
	case errors.As(err, &serverErr):
		fmt.Fprintln(p.out, p.errStyle.Render(serverErr.Kind))
		if serverErr.Message != "" {
			fmt.Fprintln(p.out, p.muted.Render(serverErr.Message))
		}
	case errors.As(err, &decodeErr):
		fmt.Fprintln(p.errOut, p.errStyle.Render("Error reading JSON: ")+fmt.Sprint(decodeErr.Cause))
		fmt.Fprintln(p.errOut, "Response: "+decodeErr.Raw)
	default:
		fmt.Fprintln(p.errOut, p.errStyle.Render("Error: ")+err.Error())
	}
}

// LogError reports a conversation log failure.
func (p *Printer) LogError(err error) {
	fmt.Fprintln(p.errOut, p.warning.Render("Error saving conversation log: ")+err.Error())
}
