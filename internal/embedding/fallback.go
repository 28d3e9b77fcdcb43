package embedding

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Kavirubc/rca-assist/internal/config"
)

// FallbackProvider wraps primary and fallback providers behind a shared
// rate limit
type FallbackProvider struct {
	primary  Provider
	fallback Provider
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewFallbackProvider creates a provider with primary and optional fallback
func NewFallbackProvider(ctx context.Context, cfg *config.EmbeddingConfig, rps int, logger *zap.Logger) (*FallbackProvider, error) {
	primary, err := createProvider(ctx, &cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("failed to create primary provider: %w", err)
	}

	var fallback Provider
	if cfg.Fallback.Provider != "" && cfg.Fallback.APIKey != "" {
		fallback, err = createProvider(ctx, &cfg.Fallback)
		if err != nil {
			logger.Warn("failed to create fallback embedding provider", zap.Error(err))
		}
	}

	return newFallbackProvider(primary, fallback, rps, logger), nil
}

func newFallbackProvider(primary, fallback Provider, rps int, logger *zap.Logger) *FallbackProvider {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &FallbackProvider{
		primary:  primary,
		fallback: fallback,
		limiter:  rate.NewLimiter(limit, max(rps, 1)),
		logger:   logger,
	}
}

// createProvider creates a provider based on config
func createProvider(ctx context.Context, cfg *config.ProviderConfig) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(ctx, cfg)
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// Embed generates an embedding with fallback on failure
func (p *FallbackProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts with fallback
func (p *FallbackProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	prepared := make([]string, len(texts))
	for i, t := range texts {
		prepared[i] = PrepareText(t)
	}

	embeddings, err := p.primary.EmbedBatch(ctx, prepared)
	if err == nil {
		return embeddings, nil
	}

	if p.fallback == nil {
		return nil, fmt.Errorf("primary embedding failed (no fallback): %w", err)
	}

	p.logger.Warn("primary embedding failed, trying fallback", zap.Int("texts", len(texts)), zap.Error(err))
	embeddings, fbErr := p.fallback.EmbedBatch(ctx, prepared)
	if fbErr != nil {
		return nil, fmt.Errorf("all embedding providers failed: %w", errors.Join(err, fbErr))
	}
	return embeddings, nil
}

// Close releases resources
func (p *FallbackProvider) Close() error {
	var errs []error
	if err := p.primary.Close(); err != nil {
		errs = append(errs, err)
	}
	if p.fallback != nil {
		if err := p.fallback.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
