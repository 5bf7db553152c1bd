package terminal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/gpterm/gpterm"
)

const (
	promptText       = "〉"
	continuationText = "  "
)

// Interface compliance check.
var _ gpterm.InputSource = (*LineReader)(nil)

// LineReader reads user input with line editing and a persistent history.
// A line that leaves a bracket open is continued on the next line.
type LineReader struct {
	state       *liner.State
	historyPath string

	prompt func(string) (string, error)
	record func(string)
}

// NewLineReader takes over the terminal for line editing and loads history
// from historyPath. An empty path disables history persistence.
func NewLineReader(historyPath string) *LineReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetMultiLineMode(true)

	r := &LineReader{
		state:       state,
		historyPath: historyPath,
		prompt:      state.Prompt,
		record:      state.AppendHistory,
	}
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
	}
	return r
}

// ReadLine returns the next complete input. It returns gpterm.ErrInterrupted
// on Ctrl+C and io.EOF on Ctrl+D or end of input.
func (r *LineReader) ReadLine() (string, error) {
	var lines []string
	prompt := promptText
	for {
		line, err := r.prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", gpterm.ErrInterrupted
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			r.record(line)
		}
		lines = append(lines, line)

		text := strings.Join(lines, "\n")
		if !gpterm.IncompleteBrackets(text) {
			return text, nil
		}
		prompt = continuationText
	}
}

// Close writes the history file and restores the terminal.
func (r *LineReader) Close() error {
	var errs []error
	if r.historyPath != "" {
		if err := r.saveHistory(); err != nil {
			errs = append(errs, err)
		}
	}
	if r.state != nil {
		errs = append(errs, r.state.Close())
	}
	return errors.Join(errs...)
}

func (r *LineReader) saveHistory() error {
	if err := os.MkdirAll(filepath.Dir(r.historyPath), 0o700); err != nil {
		return fmt.Errorf("terminal: create history directory: %w", err)
	}
	f, err := os.OpenFile(r.historyPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("terminal: open history: %w", err)
	}
	defer f.Close()
	if _, err := r.state.WriteHistory(f); err != nil {
		return fmt.Errorf("terminal: write history: %w", err)
	}
	return nil
}
