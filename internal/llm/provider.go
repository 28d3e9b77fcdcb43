// Package llm generates RCA suggestions with a chat completion model.
package llm

import (
	"context"
	"fmt"

	"github.com/Kavirubc/rca-assist/internal/config"
)

// Provider defines the interface for LLM chat completion
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Options are the generation settings shared by every provider
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

func optionsFrom(cfg *config.LLMConfig) Options {
	opts := Options{Model: cfg.Model, MaxTokens: cfg.MaxTokens, Temperature: 0.3}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 1024
	}
	if cfg.Temperature != nil {
		opts.Temperature = *cfg.Temperature
	}
	return opts
}

// New creates the provider named by cfg.Provider
func New(ctx context.Context, cfg *config.LLMConfig) (Provider, error) {
	opts := optionsFrom(cfg)
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, opts)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.APIKey, opts)
	case "anthropic":
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, opts)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
