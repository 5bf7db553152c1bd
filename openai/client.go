package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/gpterm/gpterm"
)

// Interface compliance check.
var _ gpterm.Provider = (*Client)(nil)

// Client implements [gpterm.Provider] for the chat-completions API.
type Client struct {
	apiKey     string
	url        string
	httpClient *http.Client
	readSize   int
	logger     *zap.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithURL sets the full endpoint URL. Useful for testing with httptest and
// for OpenAI-compatible servers.
func WithURL(url string) Option {
	return func(c *Client) { c.url = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithReadSize sets how many bytes a single body read may return.
func WithReadSize(n int) Option {
	return func(c *Client) { c.readSize = n }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		url:        defaultURL,
		httpClient: http.DefaultClient,
		readSize:   defaultReadSize,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream posts the conversation with streaming enabled and returns a
// [gpterm.Stream] of decoded frames.
//
// A non-2xx response carrying the error envelope is returned as a
// *gpterm.ServerError. Any other failure to establish the response wraps
// gpterm.ErrRequest.
func (c *Client) Stream(ctx context.Context, req gpterm.Request) (gpterm.Stream, error) {
	body, err := c.buildRequestBody(req)
	if err != nil {
		return nil, fmt.Errorf("openai: %w: %w", gpterm.ErrRequest, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: %w: %w", gpterm.ErrRequest, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("sending request",
		zap.String("url", c.url),
		zap.Int("messages", len(req.Messages)),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: %w: %w", gpterm.ErrRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}

	c.logger.Debug("response established", zap.Int("status", resp.StatusCode))
	return newStream(resp.Body, req.Gate, c.readSize), nil
}

func (c *Client) buildRequestBody(req gpterm.Request) ([]byte, error) {
	model := req.Model
	if model == "" {
		model = defaultModel
	}

	apiReq := apiRequest{
		Stream:      true,
		Model:       model,
		Messages:    convertMessages(req.Messages),
		Temperature: req.Temperature,
	}
	return json.Marshal(apiReq)
}

func convertMessages(msgs []gpterm.Message) []apiMessage {
	result := make([]apiMessage, len(msgs))
	for i, m := range msgs {
		result[i] = apiMessage{Role: string(m.Role), Content: m.Content}
	}
	return result
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("openai: %w: HTTP %d (failed to read body: %w)", gpterm.ErrRequest, resp.StatusCode, err)
	}
	var env apiErrorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error == nil {
		return fmt.Errorf("openai: %w: HTTP %d: %s", gpterm.ErrRequest, resp.StatusCode, bytes.TrimSpace(body))
	}
	ev := serverEvent(env.Error)
	return ev.Err()
}
