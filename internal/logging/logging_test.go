package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kavirubc/rca-assist/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		wantErr bool
	}{
		{"console", config.LoggingConfig{Level: "info", Format: "console"}, false},
		{"json", config.LoggingConfig{Level: "debug", Format: "json"}, false},
		{"bad level", config.LoggingConfig{Level: "loud", Format: "json"}, true},
		{"bad format", config.LoggingConfig{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rca.log")
	logger, err := New(&config.LoggingConfig{Level: "info", Format: "json", File: path, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	logger.Info("ingestion finished")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ingestion finished")
}
