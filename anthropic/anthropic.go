// Package anthropic implements [gpterm.Provider] for the Anthropic Messages
// API.
//
// The response is read as server-sent events. Each event is mapped to one
// [gpterm.Event]: text deltas and the stop reason become content deltas, and
// error events become server errors. Bookkeeping events such as ping and
// content_block_start produce nothing.
package anthropic

const (
	defaultBaseURL   = "https://api.anthropic.com"
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 4096
	apiVersion       = "2023-06-01"
	messagesPath     = "/v1/messages"

	// The Messages API rejects temperatures above 1.
	maxTemperature = 1.0
)

// apiRequest is the JSON body sent to the Anthropic Messages API.
type apiRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	Stream      bool         `json:"stream"`
	System      string       `json:"system,omitempty"`
	Messages    []apiMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SSE response types.

type sseContentBlockDelta struct {
	Type  string   `json:"type"`
	Index int      `json:"index"`
	Delta sseDelta `json:"delta"`
}

type sseDelta struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type sseMessageStart struct {
	Type    string `json:"type"`
	Message struct {
		Role string `json:"role"`
	} `json:"message"`
}

type sseMessageDelta struct {
	Type  string `json:"type"`
	Delta struct {
		StopReason *string `json:"stop_reason"`
	} `json:"delta"`
}

type sseError struct {
	Type  string          `json:"type"`
	Error *sseErrorDetail `json:"error"`
}

type sseErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
