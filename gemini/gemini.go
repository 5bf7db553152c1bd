// Package gemini implements [gpterm.Provider] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK. Each streamed response chunk is
// one frame and yields exactly one [gpterm.Event], so turns behave the same
// as with the chat-completions provider.
package gemini

const (
	defaultModel = "gemini-2.5-flash"

	// unknownErrorKind labels API errors that carry no status.
	unknownErrorKind = "unknown_error"
)
