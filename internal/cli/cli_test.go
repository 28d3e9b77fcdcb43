package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
tracker:
  provider: "github"
  github:
    repo: "acme/api"
qdrant:
  url: "localhost:6334"
embedding:
  primary:
    provider: "gemini"
    api_key: "k"
llm:
  provider: "anthropic"
  api_key: "k"
`

func withConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rca-assist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	prev := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = prev })
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "rca-assist version dev\n", out.String())
}

func TestConfigValidateCmd(t *testing.T) {
	withConfig(t, validConfig)

	var out bytes.Buffer
	cmd := newConfigValidateCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Configuration is valid")
	assert.Contains(t, out.String(), "github:acme/api")
}

func TestConfigValidateCmd_Invalid(t *testing.T) {
	withConfig(t, "tracker:\n  provider: jira\n")

	var out bytes.Buffer
	cmd := newConfigValidateCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
	assert.Contains(t, out.String(), "tracker.provider")
}

func TestLoadConfig_Invalid(t *testing.T) {
	withConfig(t, "tracker:\n  provider: jira\n")

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "qdrant.url")
}

func TestSuggestCmd_RejectsBadID(t *testing.T) {
	cmd := newSuggestCmd()
	cmd.SetArgs([]string{"abc"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	assert.ErrorContains(t, err, "invalid bug id")
}
