package gemini

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/gpterm/gpterm"
)

// stream implements [gpterm.Stream] by wrapping the genai SDK's streaming
// iterator. The gate is consulted before each pull, the same chunk
// granularity the chat-completions stream uses.
type stream struct {
	pull     func() (*genai.GenerateContentResponse, error, bool)
	stop     func()
	gate     *gpterm.Gate
	state    gpterm.StreamState
	received bool
	err      error
}

// Interface compliance check.
var _ gpterm.Stream = (*stream)(nil)

func newStream(seq iter.Seq2[*genai.GenerateContentResponse, error], gate *gpterm.Gate) *stream {
	next, stop := iter.Pull2(seq)
	return &stream{
		pull:  next,
		stop:  stop,
		gate:  gate,
		state: gpterm.StreamStateNew,
	}
}

func (s *stream) Next() (gpterm.Event, error) {
	switch s.state {
	case gpterm.StreamStateComplete, gpterm.StreamStateCancelled:
		return nil, io.EOF
	case gpterm.StreamStateError:
		return nil, s.err
	case gpterm.StreamStateClosed:
		return nil, fmt.Errorf("gemini: stream closed")
	}

	if !s.gate.Continue() {
		s.state = gpterm.StreamStateCancelled
		s.stop()
		return nil, io.EOF
	}

	resp, err, ok := s.pull()
	if !ok {
		s.state = gpterm.StreamStateComplete
		return nil, io.EOF
	}
	if err != nil {
		if evt, ok := serverError(err); ok {
			// A well-formed API error is the last frame.
			s.state = gpterm.StreamStateComplete
			s.stop()
			return evt, nil
		}
		s.state = gpterm.StreamStateError
		class := gpterm.ErrTransport
		if !s.received {
			class = gpterm.ErrRequest
		}
		s.err = fmt.Errorf("gemini: %w: %w", class, err)
		return nil, s.err
	}

	s.received = true
	s.state = gpterm.StreamStateStreaming
	return contentDelta(resp), nil
}

func (s *stream) State() gpterm.StreamState {
	return s.state
}

func (s *stream) Close() error {
	switch s.state {
	case gpterm.StreamStateComplete, gpterm.StreamStateCancelled, gpterm.StreamStateError:
	default:
		s.state = gpterm.StreamStateClosed
	}
	s.stop()
	return nil
}

// contentDelta joins the visible text of the first candidate. Thought parts
// are not part of the reply.
func contentDelta(resp *genai.GenerateContentResponse) gpterm.EventContentDelta {
	var evt gpterm.EventContentDelta
	if resp == nil || len(resp.Candidates) == 0 {
		return evt
	}
	cand := resp.Candidates[0]
	evt.FinishReason = string(cand.FinishReason)
	if cand.Content == nil {
		return evt
	}
	if cand.Content.Role != "" {
		evt.Role = string(gpterm.RoleAssistant)
	}
	var b strings.Builder
	for _, p := range cand.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	evt.Text = b.String()
	return evt
}

func serverError(err error) (gpterm.EventServerError, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var ptr *genai.APIError
		if !errors.As(err, &ptr) || ptr == nil {
			return gpterm.EventServerError{}, false
		}
		apiErr = *ptr
	}
	kind := apiErr.Status
	if kind == "" {
		kind = unknownErrorKind
	}
	evt := gpterm.EventServerError{Kind: kind, Message: apiErr.Message}
	if apiErr.Code != 0 {
		evt.Code = strconv.Itoa(apiErr.Code)
	}
	return evt, true
}
