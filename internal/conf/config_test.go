package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
trove:
  api_host: https://api.trove.nla.gov.au
  timeout: 10
log:
  level: debug
  format: console
  output: console
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 10, config.Trove.Timeout)
	assert.Equal(t, "debug", config.Log.Level)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
log:
  level: info
  format: json
  output: console
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "https://api.trove.nla.gov.au", config.Trove.APIHost)
	assert.Equal(t, 15, config.Trove.Timeout)
	assert.Equal(t, 3, config.Trove.MaxRetries)
	assert.Equal(t, 3, config.Trove.RetryBackoff)
	assert.Equal(t, 1024, config.Assist.MaxTokens)
}

func TestLoadConfig_KeyFromEnv(t *testing.T) {
	t.Setenv("TROVE_API_KEY", "env-key")

	path := writeConfig(t, `
log:
  level: info
  format: json
  output: console
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", config.Trove.APIKey)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
