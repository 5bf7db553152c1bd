// Package logfile appends conversation lines to plain-text log files.
package logfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gpterm/gpterm"
)

const (
	timeLayout  = "2006-01-02 15:04:05"
	historyFile = "history.txt"
)

// ErrInvalidID is returned for conversation IDs that are not plain file names.
var ErrInvalidID = errors.New("logfile: invalid conversation id")

// Interface compliance check.
var _ gpterm.LogSink = (*Log)(nil)

// Log writes one file per conversation under a single directory.
type Log struct {
	dir string
	now func() time.Time

	mu sync.Mutex
}

// Option configures a [Log].
type Option func(*Log)

// WithClock sets the time source used for line timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// New creates a Log rooted at dir. The directory is created on first write.
func New(dir string, opts ...Option) *Log {
	l := &Log{dir: dir, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Dir returns the directory holding the log files.
func (l *Log) Dir() string { return l.dir }

// Path returns the file a conversation is logged to.
func (l *Log) Path(conversationID string) string {
	return filepath.Join(l.dir, conversationID+".log")
}

// Append writes "<timestamp> <text>" as one line of the conversation's log.
func (l *Log) Append(conversationID, text string) error {
	if conversationID == "" || strings.ContainsAny(conversationID, `/\`) || conversationID == "." || conversationID == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidID, conversationID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0o700); err != nil {
		return fmt.Errorf("logfile: create directory: %w", err)
	}
	f, err := os.OpenFile(l.Path(conversationID), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("logfile: open: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%s %s\n", l.now().Format(timeLayout), text); err != nil {
		f.Close()
		return fmt.Errorf("logfile: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("logfile: close: %w", err)
	}
	return nil
}

// DefaultDir returns $XDG_DATA_HOME/gpterm/logs, falling back to
// ~/.local/share/gpterm/logs.
func DefaultDir() (string, error) {
	if base := os.Getenv("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, "gpterm", "logs"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("logfile: could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "gpterm", "logs"), nil
}

// HistoryPath returns the line-editor history file inside dir.
func HistoryPath(dir string) string {
	return filepath.Join(dir, historyFile)
}
