package gpterm

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request or configuration failed validation.
	ErrValidation = errors.New("validation error")

	// ErrRequest indicates the outbound request could not be sent or no
	// response was established. Fatal to the turn, never retried.
	ErrRequest = errors.New("request failed")

	// ErrTransport indicates reading the response body failed mid-stream.
	ErrTransport = errors.New("transport error")

	// ErrSchema indicates a well-formed payload that matches neither the
	// content schema nor the error schema.
	ErrSchema = errors.New("payload matches no known schema")

	// ErrInterrupted is returned by an InputSource when the user interrupts
	// the prompt (Ctrl+C) rather than submitting a line.
	ErrInterrupted = errors.New("interrupted")
)

// ServerError is a well-formed error reported by the server inside the
// stream. It ends the turn and the interactive session, but is not a
// protocol desynchronization.
type ServerError struct {
	Kind    string
	Message string
	Param   string
	Code    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return "server error: " + e.Kind
	}
	return fmt.Sprintf("server error: %s: %s", e.Kind, e.Message)
}

// DecodeError reports a frame payload that could not be decoded. It means
// the client and server are out of sync and is fatal to the process.
type DecodeError struct {
	Raw   string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failure: %v (payload %q)", e.Cause, e.Raw)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// IsFatal reports whether err must end the interactive session rather than
// just the current turn.
func IsFatal(err error) bool {
	var serverErr *ServerError
	var decodeErr *DecodeError
	return errors.As(err, &serverErr) || errors.As(err, &decodeErr)
}

// ExitCode maps a session-ending error to a process exit status. Server
// errors exit cleanly because the protocol itself worked; corrupt payloads
// do not.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return 0
	}
	return 1
}
