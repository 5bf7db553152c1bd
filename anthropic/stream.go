package anthropic

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gpterm/gpterm"
)

// stream implements [gpterm.Stream] by parsing SSE events from an HTTP
// response body.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	gate    *gpterm.Gate
	state   gpterm.StreamState
	err     error // terminal error, if any
}

// Interface compliance check.
var _ gpterm.Stream = (*stream)(nil)

func newStream(body io.ReadCloser, gate *gpterm.Gate) *stream {
	return &stream{
		body:    body,
		scanner: bufio.NewScanner(body),
		gate:    gate,
		state:   gpterm.StreamStateNew,
	}
}

// Next reads the next event from the SSE stream. It returns io.EOF once
// message_stop arrives or the gate stops the stream.
func (s *stream) Next() (gpterm.Event, error) {
	switch s.state {
	case gpterm.StreamStateComplete, gpterm.StreamStateCancelled:
		return nil, io.EOF
	case gpterm.StreamStateError:
		return nil, s.err
	case gpterm.StreamStateClosed:
		return nil, fmt.Errorf("anthropic: stream closed")
	}

	for {
		if !s.gate.Continue() {
			s.state = gpterm.StreamStateCancelled
			return nil, io.EOF
		}

		eventType, data, err := s.readSSEEvent()
		if err != nil {
			s.terminate(err)
			return nil, s.err
		}

		s.state = gpterm.StreamStateStreaming

		evt := s.processEvent(eventType, data)

		// processEvent may set a terminal state (message_stop).
		if s.state == gpterm.StreamStateComplete {
			return nil, io.EOF
		}
		if evt != nil {
			return evt, nil
		}
		// Bookkeeping event (ping, message_start, ...), keep reading.
	}
}

// State returns the current stream state.
func (s *stream) State() gpterm.StreamState {
	return s.state
}

// Close closes the underlying HTTP response body.
func (s *stream) Close() error {
	switch s.state {
	case gpterm.StreamStateComplete, gpterm.StreamStateCancelled, gpterm.StreamStateError:
	default:
		s.state = gpterm.StreamStateClosed
	}
	return s.body.Close()
}

// terminate records a terminal read error.
func (s *stream) terminate(err error) {
	s.state = gpterm.StreamStateError
	if err == io.EOF {
		// A complete response always ends with message_stop.
		err = io.ErrUnexpectedEOF
	}
	s.err = fmt.Errorf("anthropic: %w: %w", gpterm.ErrTransport, err)
}

// readSSEEvent reads lines until a complete SSE event is assembled.
// Returns the event type and the data payload.
func (s *stream) readSSEEvent() (string, string, error) {
	var eventType string
	var dataBuf strings.Builder

	for s.scanner.Scan() {
		line := s.scanner.Text()

		if line == "" {
			// Empty line signals end of event.
			if dataBuf.Len() > 0 {
				return eventType, dataBuf.String(), nil
			}
			continue
		}

		if v, ok := strings.CutPrefix(line, "event:"); ok {
			eventType = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(line, "data:"); ok {
			if dataBuf.Len() > 0 {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(strings.TrimPrefix(v, " "))
		}
		// Ignore comments (lines starting with ':') and unknown fields.
	}

	if err := s.scanner.Err(); err != nil {
		return "", "", err
	}

	// An event is only complete once its blank line arrives.
	if dataBuf.Len() > 0 {
		return "", "", io.ErrUnexpectedEOF
	}
	return "", "", io.EOF
}

// processEvent maps an SSE event to a gpterm.Event. Returns nil for events
// that carry nothing for the reader.
func (s *stream) processEvent(eventType, data string) gpterm.Event {
	switch eventType {
	case "message_start":
		var evt sseMessageStart
		if err := json.Unmarshal([]byte(data), &evt); err != nil {
			return gpterm.EventDecodeFailure{Raw: data, Cause: err}
		}
		return gpterm.EventContentDelta{Role: evt.Message.Role}
	case "content_block_delta":
		var evt sseContentBlockDelta
		if err := json.Unmarshal([]byte(data), &evt); err != nil {
			return gpterm.EventDecodeFailure{Raw: data, Cause: err}
		}
		if evt.Delta.Type != "text_delta" {
			return nil
		}
		return gpterm.EventContentDelta{Text: evt.Delta.Text}
	case "message_delta":
		var evt sseMessageDelta
		if err := json.Unmarshal([]byte(data), &evt); err != nil {
			return gpterm.EventDecodeFailure{Raw: data, Cause: err}
		}
		if evt.Delta.StopReason == nil {
			return nil
		}
		return gpterm.EventContentDelta{FinishReason: *evt.Delta.StopReason}
	case "message_stop":
		s.state = gpterm.StreamStateComplete
		return nil
	case "error":
		var evt sseError
		if err := json.Unmarshal([]byte(data), &evt); err != nil {
			return gpterm.EventDecodeFailure{Raw: data, Cause: err}
		}
		if evt.Error == nil {
			return gpterm.EventDecodeFailure{Raw: data, Cause: gpterm.ErrSchema}
		}
		return serverEvent(evt.Error)
	default:
		// ping, content_block_start/stop and unknown types carry no text.
		return nil
	}
}
