package embedding

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/Kavirubc/rca-assist/internal/config"
)

// GeminiProvider embeds bug documents with the Gemini embedding models
type GeminiProvider struct {
	client *genai.Client
	opts   settings
}

// NewGeminiProvider creates a Gemini embedding provider from cfg
func NewGeminiProvider(ctx context.Context, cfg *config.ProviderConfig) (*GeminiProvider, error) {
	opts, err := resolveSettings(cfg, "gemini-embedding-001")
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, opts: opts}, nil
}

// Embed generates an embedding for a single text
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return embedOne(ctx, p, text)
}

// EmbedBatch embeds texts in one request, one content per text
func (p *GeminiProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, &genai.Content{Parts: []*genai.Part{{Text: text}}})
	}

	result, err := p.client.Models.EmbedContent(ctx, p.opts.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: genai.Ptr(int32(p.opts.dimensions)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(result.Embeddings))
	}

	vectors := make([][]float32, 0, len(texts))
	for _, emb := range result.Embeddings {
		if len(emb.Values) != p.opts.dimensions {
			return nil, fmt.Errorf("embedding has %d dimensions, index expects %d", len(emb.Values), p.opts.dimensions)
		}
		vectors = append(vectors, emb.Values)
	}
	return vectors, nil
}

// Close releases resources
func (p *GeminiProvider) Close() error {
	return nil
}
