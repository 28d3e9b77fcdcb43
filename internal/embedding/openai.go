package embedding

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/Kavirubc/rca-assist/internal/config"
)

// OpenAIProvider implements Provider using the OpenAI embeddings API or any
// compatible endpoint such as OpenRouter
type OpenAIProvider struct {
	client *openai.Client
	opts   settings
}

// NewOpenAIProvider creates a new OpenAI embedding provider
func NewOpenAIProvider(cfg *config.ProviderConfig) (*OpenAIProvider, error) {
	opts, err := resolveSettings(cfg, string(openai.SmallEmbedding3))
	if err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(opts.apiKey)
	if opts.baseURL != "" {
		clientCfg.BaseURL = opts.baseURL
	}

	return &OpenAIProvider{client: openai.NewClientWithConfig(clientCfg), opts: opts}, nil
}

// Embed generates an embedding for a single text
func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return embedOne(ctx, p, text)
}

// EmbedBatch generates embeddings for multiple texts
func (p *OpenAIProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      texts,
		Model:      openai.EmbeddingModel(p.opts.model),
		Dimensions: p.opts.dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	// Data carries an index; order by it rather than trusting response order
	embeddings := make([][]float32, len(texts))
	for i, data := range resp.Data {
		idx := data.Index
		if idx < 0 || idx >= len(texts) {
			idx = i
		}
		embeddings[idx] = data.Embedding
	}

	return embeddings, nil
}

// Close releases resources
func (p *OpenAIProvider) Close() error {
	return nil
}
