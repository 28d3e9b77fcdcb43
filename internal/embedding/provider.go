// Package embedding turns bug text into vectors.
package embedding

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Kavirubc/rca-assist/internal/config"
)

// maxInputChars keeps a single input comfortably inside provider token limits
const maxInputChars = 6000

// Provider defines the interface for embedding generation
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Close() error
}

// settings are the provider options after defaults are applied
type settings struct {
	apiKey     string
	baseURL    string
	model      string
	dimensions int
}

// resolveSettings validates cfg and fills the model and dimension defaults
func resolveSettings(cfg *config.ProviderConfig, defaultModel string) (settings, error) {
	if cfg.APIKey == "" {
		return settings{}, fmt.Errorf("%s embedding provider requires an api key", cfg.Provider)
	}

	s := settings{apiKey: cfg.APIKey, baseURL: cfg.BaseURL, model: cfg.Model, dimensions: cfg.Dimensions}
	if s.model == "" {
		s.model = defaultModel
	}
	if s.dimensions == 0 {
		s.dimensions = 768
	}
	return s, nil
}

// embedOne embeds a single text through a batch call
func embedOne(ctx context.Context, p Provider, text string) ([]float32, error) {
	vectors, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// PrepareText normalises whitespace and truncates text before embedding
func PrepareText(text string) string {
	return TruncateText(CleanText(text), maxInputChars)
}

// TruncateText truncates text to maxLen bytes without splitting a rune
func TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

// CleanText trims every line and drops blank ones
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
