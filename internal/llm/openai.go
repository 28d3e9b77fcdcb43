package llm

import (
	"context"
	"fmt"
	"math"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI's API or a compatible
// endpoint such as OpenRouter
type OpenAIProvider struct {
	client *openai.Client
	opts   Options
}

// NewOpenAIProvider creates a new OpenAI chat provider
func NewOpenAIProvider(apiKey, baseURL string, opts Options) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		opts:   opts,
	}, nil
}

// Complete sends prompt as a single user message
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}

	// the request omits a zero temperature, which the API reads as 1
	temperature := p.opts.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.opts.Model,
		Messages:    messages,
		MaxTokens:   p.opts.MaxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// Close releases resources
func (p *OpenAIProvider) Close() error {
	return nil
}
