package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/gpterm/gpterm"
)

// Interface compliance check.
var _ gpterm.Provider = (*Client)(nil)

// Client implements [gpterm.Provider] for the Anthropic Messages API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxTokens  int
	logger     *zap.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxTokens caps the length of each reply.
func WithMaxTokens(n int) Option {
	return func(c *Client) { c.maxTokens = n }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new Anthropic [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		maxTokens:  defaultMaxTokens,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream sends a streaming request to the Anthropic Messages API and returns
// a [gpterm.Stream] of decoded events.
//
// A non-2xx response carrying an error body is returned as a
// *gpterm.ServerError. Any other failure to establish the response wraps
// gpterm.ErrRequest.
func (c *Client) Stream(ctx context.Context, req gpterm.Request) (gpterm.Stream, error) {
	body, err := c.buildRequestBody(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w: %w", gpterm.ErrRequest, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w: %w", gpterm.ErrRequest, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	c.logger.Debug("sending request", zap.Int("messages", len(req.Messages)))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w: %w", gpterm.ErrRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}

	return newStream(resp.Body, req.Gate), nil
}

func (c *Client) buildRequestBody(req gpterm.Request) ([]byte, error) {
	model := req.Model
	if model == "" {
		model = defaultModel
	}
	system, messages := convertMessages(req.Messages)
	return json.Marshal(apiRequest{
		Model:       model,
		MaxTokens:   c.maxTokens,
		Stream:      true,
		System:      system,
		Messages:    messages,
		Temperature: min(req.Temperature, maxTemperature),
	})
}

// convertMessages splits system messages out into the top-level system
// prompt, which the Messages API takes separately from the conversation.
func convertMessages(msgs []gpterm.Message) (string, []apiMessage) {
	var system []string
	result := make([]apiMessage, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == gpterm.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		result = append(result, apiMessage{Role: string(m.Role), Content: m.Content})
	}
	return strings.Join(system, "\n\n"), result
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("anthropic: %w: HTTP %d (failed to read body: %w)", gpterm.ErrRequest, resp.StatusCode, err)
	}
	var apiErr sseError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error == nil {
		return fmt.Errorf("anthropic: %w: HTTP %d: %s", gpterm.ErrRequest, resp.StatusCode, bytes.TrimSpace(body))
	}
	return serverEvent(apiErr.Error).Err()
}

func serverEvent(d *sseErrorDetail) gpterm.EventServerError {
	kind := d.Type
	if kind == "" {
		kind = "unknown_error"
	}
	return gpterm.EventServerError{Kind: kind, Message: d.Message}
}
