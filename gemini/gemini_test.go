package gemini_test

import (
	"errors"
	"io"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/gpterm/gpterm"
	"github.com/gpterm/gpterm/gemini"
)

// chunks returns a genai-style streaming iterator over pre-built responses,
// optionally ending with an error.
func chunks(resps []*genai.GenerateContentResponse, tail error) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, r := range resps {
			if !yield(r, nil) {
				return
			}
		}
		if tail != nil {
			yield(nil, tail)
		}
	}
}

func textResponse(text string, parts ...*genai.Part) *genai.GenerateContentResponse {
	parts = append(parts, &genai.Part{Text: text})
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: parts},
		}},
	}
}

func collect(t *testing.T, s gpterm.Stream) []gpterm.Event {
	t.Helper()
	var events []gpterm.Event
	for {
		evt, err := s.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, evt)
	}
}

func TestConvertMessages(t *testing.T) {
	t.Parallel()
	contents, system := gemini.ConvertMessages([]gpterm.Message{
		{Role: gpterm.RoleSystem, Content: "Be brief."},
		{Role: gpterm.RoleUser, Content: "Hello"},
		{Role: gpterm.RoleAssistant, Content: "Hi"},
		{Role: gpterm.RoleUser, Content: "Bye"},
	})

	require.NotNil(t, system)
	require.Len(t, system.Parts, 1)
	assert.Equal(t, "Be brief.", system.Parts[0].Text)

	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "Hello", contents[0].Parts[0].Text)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "Hi", contents[1].Parts[0].Text)
	assert.Equal(t, "user", contents[2].Role)
}

func TestConvertMessages_NoSystem(t *testing.T) {
	t.Parallel()
	_, system := gemini.ConvertMessages([]gpterm.Message{{Role: gpterm.RoleUser, Content: "x"}})
	assert.Nil(t, system)
}

func TestStream_TextDeltas(t *testing.T) {
	t.Parallel()
	s := gemini.NewStreamFromIter(chunks([]*genai.GenerateContentResponse{
		textResponse("Hel"),
		textResponse("lo", &genai.Part{Text: "planning...", Thought: true}),
		{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}}},
	}, nil), nil)

	events := collect(t, s)
	assert.Equal(t, []gpterm.Event{
		gpterm.EventContentDelta{Text: "Hel", Role: "assistant"},
		gpterm.EventContentDelta{Text: "lo", Role: "assistant"},
		gpterm.EventContentDelta{FinishReason: "STOP"},
	}, events)
	assert.Equal(t, gpterm.StreamStateComplete, s.State())
}

func TestStream_EmptyResponse(t *testing.T) {
	t.Parallel()
	s := gemini.NewStreamFromIter(chunks([]*genai.GenerateContentResponse{{}}, nil), nil)
	assert.Equal(t, []gpterm.Event{gpterm.EventContentDelta{}}, collect(t, s))
}

func TestStream_APIError(t *testing.T) {
	t.Parallel()
	apiErr := genai.APIError{Code: 400, Message: "API key not valid", Status: "INVALID_ARGUMENT"}
	s := gemini.NewStreamFromIter(chunks(nil, apiErr), nil)

	events := collect(t, s)
	assert.Equal(t, []gpterm.Event{gpterm.EventServerError{
		Kind:    "INVALID_ARGUMENT",
		Message: "API key not valid",
		Code:    "400",
	}}, events)
}

func TestStream_RequestFailure(t *testing.T) {
	t.Parallel()
	s := gemini.NewStreamFromIter(chunks(nil, errors.New("dial tcp: no route to host")), nil)

	_, err := s.Next()
	assert.ErrorIs(t, err, gpterm.ErrRequest)
	assert.Equal(t, gpterm.StreamStateError, s.State())

	_, again := s.Next()
	assert.Equal(t, err, again)
}

func TestStream_TransportFailureAfterData(t *testing.T) {
	t.Parallel()
	s := gemini.NewStreamFromIter(chunks([]*genai.GenerateContentResponse{textResponse("par")}, errors.New("stream reset")), nil)

	_, err := s.Next()
	require.NoError(t, err)
	_, err = s.Next()
	assert.ErrorIs(t, err, gpterm.ErrTransport)
}

func TestStream_Cancelled(t *testing.T) {
	t.Parallel()
	gate := gpterm.NewGate()
	pulled := 0
	seq := func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, text := range []string{"a", "b", "c"} {
			pulled++
			if !yield(textResponse(text), nil) {
				return
			}
		}
	}
	s := gemini.NewStreamFromIter(seq, gate)

	evt, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", evt.(gpterm.EventContentDelta).Text)

	gate.Stop()
	_, err = s.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, gpterm.StreamStateCancelled, s.State())
	assert.Equal(t, 1, pulled)
}

func TestStream_CloseBeforeTerminal(t *testing.T) {
	t.Parallel()
	s := gemini.NewStreamFromIter(chunks([]*genai.GenerateContentResponse{textResponse("x")}, nil), nil)
	require.NoError(t, s.Close())
	assert.Equal(t, gpterm.StreamStateClosed, s.State())
	_, err := s.Next()
	assert.Error(t, err)
}
