package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini-3-flash-preview", cfg.LLM.Model)
	assert.Equal(t, "ws://localhost:29551/", cfg.Link.URL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
link:
  url: ws://build-server:4000/
  command_timeout: 5s
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ws://build-server:4000/", cfg.Link.URL)
	assert.Equal(t, 5*time.Second, cfg.CommandTimeout())
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep defaults.
	assert.Equal(t, "10s", cfg.Link.ConnectTimeout)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("link: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("VIBE_WS_URL", "ws://env-host:9/")
	t.Setenv("VIBE_MODEL", "gemini-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, "ws://env-host:9/", cfg.Link.URL)
	assert.Equal(t, "gemini-env", cfg.LLM.Model)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  api_key: file-key\n"), 0o644))
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.LLM.APIKey, "environment wins over the file")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "no API key")

	cfg.LLM.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	cfg.Link.URL = ""
	assert.Error(t, cfg.Validate())
}

func TestTimeoutFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Link.CommandTimeout = "garbage"
	assert.Equal(t, 30*time.Second, cfg.CommandTimeout())

	cfg.LLM.Timeout = "-5s"
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout())
}
