package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements Provider using the Anthropic Messages API
type AnthropicProvider struct {
	client anthropic.Client
	opts   Options
}

// NewAnthropicProvider creates a new Anthropic chat provider
func NewAnthropicProvider(apiKey, baseURL string, opts Options) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}

	if opts.Model == "" {
		opts.Model = "claude-3-5-haiku-latest"
	}

	return &AnthropicProvider{
		client: anthropic.NewClient(reqOpts...),
		opts:   opts,
	}, nil
}

// Complete sends prompt as a single user message
func (p *AnthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.opts.Model),
		MaxTokens:   int64(p.opts.MaxTokens),
		Temperature: anthropic.Float(float64(p.opts.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content returned")
	}
	return sb.String(), nil
}

// Close releases resources
func (p *AnthropicProvider) Close() error {
	return nil
}
