package mock

import "github.com/gpterm/gpterm"

// Interface compliance checks.
var (
	_ gpterm.Sink        = (*Sink)(nil)
	_ gpterm.LogSink     = (*LogSink)(nil)
	_ gpterm.InputSource = (*InputSource)(nil)
)

// Sink is a test double for gpterm.Sink.
// Set EmitFn before calling Emit.
type Sink struct {
	EmitFn func(char string) error
}

// Emit delegates to EmitFn.
func (s *Sink) Emit(char string) error {
	return s.EmitFn(char)
}

// LogSink is a test double for gpterm.LogSink.
// Set AppendFn before calling Append.
type LogSink struct {
	AppendFn func(conversationID, text string) error
}

// Append delegates to AppendFn.
func (l *LogSink) Append(conversationID, text string) error {
	return l.AppendFn(conversationID, text)
}

// InputSource is a test double for gpterm.InputSource.
// Set ReadLineFn before calling ReadLine.
type InputSource struct {
	ReadLineFn func() (string, error)
}

// ReadLine delegates to ReadLineFn.
func (s *InputSource) ReadLine() (string, error) {
	return s.ReadLineFn()
}
