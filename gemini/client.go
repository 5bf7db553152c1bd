package gemini

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/gpterm/gpterm"
)

// Interface compliance check.
var _ gpterm.Provider = (*Client)(nil)

// Client implements [gpterm.Provider] for the Google Gemini API.
type Client struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model used when a request names none.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client: gc,
		model:  defaultModel,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Stream starts a streaming generation and returns a [gpterm.Stream] of
// content deltas. The request is only sent on the first call to Next, so
// failures to establish the response surface there as gpterm.ErrRequest.
func (c *Client) Stream(ctx context.Context, req gpterm.Request) (gpterm.Stream, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	contents, system := ConvertMessages(req.Messages)
	temp := float32(req.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature:       &temp,
		SystemInstruction: system,
	}

	c.logger.Debug("sending request", zap.String("model", model), zap.Int("contents", len(contents)))
	iter := c.client.Models.GenerateContentStream(ctx, model, contents, config)
	return newStream(iter, req.Gate), nil
}

// ConvertMessages splits a transcript into genai contents and a system
// instruction. System messages are joined into the instruction; assistant
// turns use the "model" role.
// Exported for testing.
func ConvertMessages(msgs []gpterm.Message) ([]*genai.Content, *genai.Content) {
	var (
		contents []*genai.Content
		system   *genai.Content
	)
	for _, m := range msgs {
		switch m.Role {
		case gpterm.RoleSystem:
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, &genai.Part{Text: m.Content})
		case gpterm.RoleUser:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		case gpterm.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		}
	}
	return contents, system
}
