// Package openai implements [gpterm.Provider] for OpenAI-compatible
// chat-completion endpoints.
//
// The response body is consumed chunk by chunk. An assembler reassembles
// "data:" frames that may be split at any byte across reads, a decoder maps
// each frame payload to exactly one [gpterm.Event], and the stream exposes
// them through the pull-based [gpterm.Stream] interface.
package openai

import "encoding/json"

const (
	defaultURL   = "https://api.openai.com/v1/chat/completions"
	defaultModel = "gpt-3.5-turbo"

	// defaultReadSize is the size of a single body read. Frames are
	// independent of it.
	defaultReadSize = 4096
)

// apiRequest is the JSON body sent to the chat-completions endpoint.
type apiRequest struct {
	Stream      bool         `json:"stream"`
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Stream frame types.

// apiChunk is the success schema. Abbreviated frames carry the delta at the
// top level instead of inside choices.
type apiChunk struct {
	ID      string      `json:"id"`
	Object  string      `json:"object"`
	Created int64       `json:"created"`
	Model   string      `json:"model"`
	Choices []apiChoice `json:"choices"`
	Delta   *apiDelta   `json:"delta"`
}

type apiChoice struct {
	Delta        *apiDelta `json:"delta"`
	Index        int       `json:"index"`
	FinishReason *string   `json:"finish_reason"`
}

type apiDelta struct {
	Content *string `json:"content"`
	Role    *string `json:"role"`
}

// apiErrorEnvelope is the error schema, used both in-stream and as the body
// of non-2xx responses.
type apiErrorEnvelope struct {
	Error *apiError `json:"error"`
}

// apiError fields are nullable; param and code may be strings or numbers.
type apiError struct {
	Message *string         `json:"message"`
	Type    *string         `json:"type"`
	Param   json.RawMessage `json:"param"`
	Code    json.RawMessage `json:"code"`
}
