package openai

import (
	"errors"
	"fmt"
	"io"

	"github.com/gpterm/gpterm"
)

// stream implements [gpterm.Stream] over a chat-completions response body.
type stream struct {
	body  io.ReadCloser
	asm   *assembler
	state gpterm.StreamState
	err   error // terminal error, if any
}

// Interface compliance check.
var _ gpterm.Stream = (*stream)(nil)

func newStream(body io.ReadCloser, gate *gpterm.Gate, readSize int) *stream {
	return &stream{
		body:  body,
		asm:   newAssembler(body, gate, readSize),
		state: gpterm.StreamStateNew,
	}
}

// Next returns the event decoded from the next frame. It returns io.EOF
// once the stream completed or was cancelled.
func (s *stream) Next() (gpterm.Event, error) {
	switch s.state {
	case gpterm.StreamStateComplete, gpterm.StreamStateCancelled:
		return nil, io.EOF
	case gpterm.StreamStateError:
		return nil, s.err
	case gpterm.StreamStateClosed:
		return nil, fmt.Errorf("openai: stream closed")
	}

	payload, err := s.asm.next()
	switch {
	case err == io.EOF:
		s.state = gpterm.StreamStateComplete
		return nil, io.EOF
	case errors.Is(err, errCancelled):
		s.state = gpterm.StreamStateCancelled
		return nil, io.EOF
	case err != nil:
		s.state = gpterm.StreamStateError
		s.err = fmt.Errorf("openai: %w", err)
		return nil, s.err
	}

	s.state = gpterm.StreamStateStreaming
	return decode(payload), nil
}

// State returns the current stream state.
func (s *stream) State() gpterm.StreamState {
	return s.state
}

// Close closes the underlying response body. Closing a stream that has not
// reached a terminal state moves it to StreamStateClosed.
func (s *stream) Close() error {
	switch s.state {
	case gpterm.StreamStateComplete, gpterm.StreamStateCancelled, gpterm.StreamStateError:
	default:
		s.state = gpterm.StreamStateClosed
	}
	return s.body.Close()
}
