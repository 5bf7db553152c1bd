package gpterm

// Sink receives assistant output one character (grapheme cluster) at a time.
type Sink interface {
	Emit(char string) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(char string) error

// Emit calls f(char).
func (f SinkFunc) Emit(char string) error { return f(char) }

// Discard is a Sink that drops everything.
var Discard Sink = SinkFunc(func(string) error { return nil })

// InputSource yields user-authored lines. ReadLine returns io.EOF at end of
// input and ErrInterrupted when the user interrupts the prompt.
type InputSource interface {
	ReadLine() (string, error)
}

// LogSink appends timestamped conversation lines. Failures are reported to
// the caller and never abort a turn.
type LogSink interface {
	Append(conversationID, text string) error
}
