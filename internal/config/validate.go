package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	embeddingProviders = []string{"gemini", "openai"}
	llmProviders       = []string{"gemini", "openai", "anthropic"}
)

// Validate checks the configuration for errors
func Validate(cfg *Config) []error {
	var errs []error

	// Tracker
	switch cfg.Tracker.Provider {
	case "ado":
		if cfg.Tracker.ADO.OrgURL == "" {
			errs = append(errs, ValidationError{"tracker.ado.org_url", "required"})
		} else if !strings.HasPrefix(cfg.Tracker.ADO.OrgURL, "http://") && !strings.HasPrefix(cfg.Tracker.ADO.OrgURL, "https://") {
			errs = append(errs, ValidationError{"tracker.ado.org_url", "must be an http(s) URL"})
		}
		if cfg.Tracker.ADO.Project == "" {
			errs = append(errs, ValidationError{"tracker.ado.project", "required"})
		}
		if cfg.Tracker.ADO.PAT == "" {
			errs = append(errs, ValidationError{"tracker.ado.pat", "required"})
		}
	case "github":
		if !strings.Contains(cfg.Tracker.GitHub.Repo, "/") {
			errs = append(errs, ValidationError{"tracker.github.repo", "must be in format 'owner/repo'"})
		}
	default:
		errs = append(errs, ValidationError{"tracker.provider", "must be 'ado' or 'github'"})
	}

	// Qdrant
	if cfg.Qdrant.URL == "" {
		errs = append(errs, ValidationError{"qdrant.url", "required"})
	}

	// Index
	if cfg.Index.Distance != "euclid" && cfg.Index.Distance != "cosine" {
		errs = append(errs, ValidationError{"index.distance", "must be 'euclid' or 'cosine'"})
	}
	if cfg.Index.Dimensions != cfg.Embedding.Primary.Dimensions {
		errs = append(errs, ValidationError{"index.dimensions", "must match embedding.primary.dimensions"})
	}
	if cfg.Embedding.Fallback.Provider != "" && cfg.Embedding.Fallback.Dimensions != cfg.Index.Dimensions {
		errs = append(errs, ValidationError{"embedding.fallback.dimensions", "must match index.dimensions"})
	}

	// Embedding
	if cfg.Embedding.Primary.Provider == "" {
		errs = append(errs, ValidationError{"embedding.primary.provider", "required"})
	} else if !oneOf(cfg.Embedding.Primary.Provider, embeddingProviders) {
		errs = append(errs, ValidationError{"embedding.primary.provider", "must be 'gemini' or 'openai'"})
	}
	if cfg.Embedding.Primary.APIKey == "" {
		errs = append(errs, ValidationError{"embedding.primary.api_key", "required"})
	}

	// LLM
	if cfg.LLM.Provider == "" {
		errs = append(errs, ValidationError{"llm.provider", "required"})
	} else if !oneOf(cfg.LLM.Provider, llmProviders) {
		errs = append(errs, ValidationError{"llm.provider", "must be 'gemini', 'openai' or 'anthropic'"})
	}
	if cfg.LLM.APIKey == "" {
		errs = append(errs, ValidationError{"llm.api_key", "required"})
	}

	// Suggest
	if cfg.Suggest.Threshold != nil && *cfg.Suggest.Threshold < 0 {
		errs = append(errs, ValidationError{"suggest.threshold", "must not be negative"})
	}
	if cfg.Suggest.TopK < 1 {
		errs = append(errs, ValidationError{"suggest.top_k", "must be at least 1"})
	}

	if cfg.Ingest.BatchSize < 1 {
		errs = append(errs, ValidationError{"ingest.batch_size", "must be at least 1"})
	}

	return errs
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// SourceName identifies the configured tracker instance. It namespaces index
// point ids so two trackers never collide in one collection.
func (cfg *Config) SourceName() string {
	if cfg.Tracker.Provider == "github" {
		return "github:" + cfg.Tracker.GitHub.Repo
	}
	return fmt.Sprintf("ado:%s/%s", strings.TrimSuffix(cfg.Tracker.ADO.OrgURL, "/"), cfg.Tracker.ADO.Project)
}
