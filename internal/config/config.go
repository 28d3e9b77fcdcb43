package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full application configuration
type Config struct {
	Tracker    TrackerConfig    `yaml:"tracker"`
	Qdrant     QdrantConfig     `yaml:"qdrant"`
	Index      IndexConfig      `yaml:"index"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	LLM        LLMConfig        `yaml:"llm"`
	Ledger     LedgerConfig     `yaml:"ledger"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Suggest    SuggestConfig    `yaml:"suggest"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	RateLimits RateLimitsConfig `yaml:"rate_limits"`
}

// TrackerConfig selects and configures the issue tracker
type TrackerConfig struct {
	Provider string       `yaml:"provider"` // "ado" or "github"
	Tag      string       `yaml:"tag"`
	ADO      ADOConfig    `yaml:"ado"`
	GitHub   GitHubConfig `yaml:"github"`
}

// ADOConfig contains Azure DevOps settings
type ADOConfig struct {
	OrgURL   string `yaml:"org_url"`
	Project  string `yaml:"project"`
	PAT      string `yaml:"pat"`
	RCAField string `yaml:"rca_field"`
}

// GitHubConfig contains GitHub settings. Authentication comes from the gh CLI
// environment (GH_TOKEN / gh auth login).
type GitHubConfig struct {
	Repo string `yaml:"repo"` // "owner/repo"
}

// QdrantConfig contains Qdrant connection settings
type QdrantConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// IndexConfig describes the vector collection
type IndexConfig struct {
	Collection string `yaml:"collection"`
	Dimensions int    `yaml:"dimensions"`
	Distance   string `yaml:"distance"` // "euclid" or "cosine"
}

// EmbeddingConfig contains embedding provider settings
type EmbeddingConfig struct {
	Primary  ProviderConfig `yaml:"primary"`
	Fallback ProviderConfig `yaml:"fallback"`
}

// ProviderConfig contains settings for an embedding provider
type ProviderConfig struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Dimensions int    `yaml:"dimensions"`
}

// LLMConfig contains completion provider settings
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature *float32 `yaml:"temperature"` // nil means unset; 0 is valid
}

// LedgerConfig locates the dedup ledger file
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// IngestConfig contains ingestion settings
type IngestConfig struct {
	BatchSize int    `yaml:"batch_size"`
	Schedule  string `yaml:"schedule"` // e.g. "24h", "7d"; empty runs once
}

// SuggestConfig contains suggestion settings
type SuggestConfig struct {
	Threshold *float64 `yaml:"threshold"` // nil means unset; 0 keeps exact matches only
	TopK      int     `yaml:"top_k"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // "json" or "console"
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// RateLimitsConfig contains rate limiting settings
type RateLimitsConfig struct {
	TrackerRPS   int `yaml:"tracker_requests_per_second"`
	EmbeddingRPS int `yaml:"embedding_requests_per_second"`
}

// Load reads and parses config from the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// FindConfigPath looks for config in common locations
func FindConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	paths := []string{
		".rca-assist.yaml",
		"rca-assist.yaml",
		"rca-assist.yml",
		"config/rca-assist.yaml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ".config", "rca-assist", "config.yaml")
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}

	return ""
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.Tracker.Provider == "" {
		cfg.Tracker.Provider = "ado"
	}
	if cfg.Tracker.Tag == "" {
		cfg.Tracker.Tag = "RCA Done"
	}
	if cfg.Tracker.ADO.RCAField == "" {
		cfg.Tracker.ADO.RCAField = "Custom.RCADetail"
	}

	if cfg.Index.Collection == "" {
		cfg.Index.Collection = "rca_bugs"
	}
	if cfg.Index.Distance == "" {
		cfg.Index.Distance = "euclid"
	}
	if cfg.Embedding.Primary.Dimensions == 0 {
		cfg.Embedding.Primary.Dimensions = 768
	}
	if cfg.Embedding.Fallback.Dimensions == 0 {
		cfg.Embedding.Fallback.Dimensions = cfg.Embedding.Primary.Dimensions
	}
	// The collection must be created with the dimensionality the embedder produces
	if cfg.Index.Dimensions == 0 {
		cfg.Index.Dimensions = cfg.Embedding.Primary.Dimensions
	}

	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 1024
	}
	if cfg.LLM.Temperature == nil {
		cfg.LLM.Temperature = ptr(float32(0.3))
	}

	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = "data/ingested_ids.json"
	}
	if cfg.Ingest.BatchSize == 0 {
		cfg.Ingest.BatchSize = 100
	}

	if cfg.Suggest.Threshold == nil {
		cfg.Suggest.Threshold = ptr(1.0)
	}
	if cfg.Suggest.TopK == 0 {
		cfg.Suggest.TopK = 3
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 2 * time.Minute
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = 100
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 5
	}

	if cfg.RateLimits.TrackerRPS == 0 {
		cfg.RateLimits.TrackerRPS = 10
	}
	if cfg.RateLimits.EmbeddingRPS == 0 {
		cfg.RateLimits.EmbeddingRPS = 5
	}
}

func ptr[T any](v T) *T {
	return &v
}
