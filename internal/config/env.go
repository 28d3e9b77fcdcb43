package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match // Keep original if env var not set
	})
}

// expandConfigEnvVars expands environment variables in config string fields
func expandConfigEnvVars(cfg *Config) {
	cfg.Tracker.ADO.OrgURL = expandEnvVars(cfg.Tracker.ADO.OrgURL)
	cfg.Tracker.ADO.Project = expandEnvVars(cfg.Tracker.ADO.Project)
	cfg.Tracker.ADO.PAT = expandEnvVars(cfg.Tracker.ADO.PAT)
	cfg.Tracker.GitHub.Repo = expandEnvVars(cfg.Tracker.GitHub.Repo)
	cfg.Qdrant.URL = expandEnvVars(cfg.Qdrant.URL)
	cfg.Qdrant.APIKey = expandEnvVars(cfg.Qdrant.APIKey)
	cfg.Embedding.Primary.APIKey = expandEnvVars(cfg.Embedding.Primary.APIKey)
	cfg.Embedding.Primary.BaseURL = expandEnvVars(cfg.Embedding.Primary.BaseURL)
	cfg.Embedding.Fallback.APIKey = expandEnvVars(cfg.Embedding.Fallback.APIKey)
	cfg.Embedding.Fallback.BaseURL = expandEnvVars(cfg.Embedding.Fallback.BaseURL)
	cfg.LLM.APIKey = expandEnvVars(cfg.LLM.APIKey)
	cfg.LLM.BaseURL = expandEnvVars(cfg.LLM.BaseURL)
}
