// Package claude adapts the Anthropic API to the advisory generator contract,
// as an alternative to a locally hosted model.
package claude

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

const (
	defaultModel     = "claude-haiku-4-5-20251001"
	defaultMaxTokens = 1024
)

// Client generates advisory text via the Anthropic messages API. Unlike the
// Ollama transport there is no second envelope: the model's text blocks are
// the raw output.
type Client struct {
	client      sdk.Client
	model       string
	maxTokens   int64
	temperature float64
	sdkOpts     []option.RequestOption
}

// Option configures the client.
type Option func(*Client)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithMaxTokens overrides the default output token cap.
func WithMaxTokens(n int64) Option {
	return func(c *Client) {
		c.maxTokens = n
	}
}

// WithRequestOptions passes additional options to the underlying SDK client,
// e.g. option.WithBaseURL in tests.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(c *Client) {
		c.sdkOpts = append(c.sdkOpts, opts...)
	}
}

// NewClient creates a Claude-backed generator.
func NewClient(apiKey string, temperature float64, opts ...Option) *Client {
	c := &Client{
		model:       defaultModel,
		maxTokens:   defaultMaxTokens,
		temperature: temperature,
		sdkOpts:     []option.RequestOption{option.WithAPIKey(apiKey)},
	}
	for _, o := range opts {
		o(c)
	}
	c.client = sdk.NewClient(c.sdkOpts...)
	return c
}

// Generate sends the prompt as a single user message and returns the
// concatenated text blocks of the reply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: sdk.Float(c.temperature),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "claude: create message")
	}

	var sb strings.Builder
	for _, b := range msg.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	if sb.Len() == 0 {
		return "", eris.New("claude: empty completion")
	}
	return sb.String(), nil
}
