package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/chaudhari-piyush/talentlens/internal/llm"
)

const defaultModel = "gemini-2.0-flash"

// Client calls the Gemini API through google.golang.org/genai.
type Client struct {
	inner   *genai.Client
	model   string
	timeout time.Duration
}

// Options configure the Gemini client.
type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// New builds a Gemini-backed llm.Client. A missing API key returns
// llm.ErrNotConfigured so callers can distinguish configuration gaps from
// provider failures.
func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, llm.ErrNotConfigured
	}
	model := opts.Model
	if model == "" {
		model = defaultModel
	}

	inner, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &Client{inner: inner, model: model, timeout: opts.Timeout}, nil
}

// Generate performs a single generation attempt. Retries and fallbacks are
// the caller's responsibility.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.inner.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate model=%s: %w", c.model, err)
	}
	if resp == nil {
		return "", fmt.Errorf("gemini generate model=%s: empty response", c.model)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini generate model=%s: no text in response", c.model)
	}
	return text, nil
}

var _ llm.Client = (*Client)(nil)
