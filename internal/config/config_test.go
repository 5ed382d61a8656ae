package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paintassistant.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8888, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 0.1, cfg.AI.DecisionTemperature)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.ToolOverlayDelay)
	assert.Equal(t, 5*time.Second, cfg.UI.ToolOverlayTTL)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9000

[ai]
provider = "ollama"
model = "llama3"

[ui]
tool_overlay_ttl = "8s"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "ollama", cfg.AI.Provider)
	assert.Equal(t, "llama3", cfg.AI.Model)
	assert.Equal(t, 8*time.Second, cfg.UI.ToolOverlayTTL)
	assert.Equal(t, "info", cfg.Server.LogLevel, "untouched keys keep their defaults")
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9000
`)
	t.Setenv("PAINTCHAT_SERVER_PORT", "9100")
	t.Setenv("PAINTCHAT_AI_API_KEY", "sk-test")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
}

func TestLoadConfig_MissingFileFails(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Error(t, Validate(cfg), "openai without an api key must fail")

	cfg.AI.APIKey = "sk-test"
	assert.NoError(t, Validate(cfg))

	cfg.AI.Provider = "ollama"
	cfg.AI.APIKey = ""
	assert.NoError(t, Validate(cfg), "ollama needs no key")

	cfg.AI.Provider = "carrier-pigeon"
	assert.Error(t, Validate(cfg))

	cfg.AI.Provider = "ollama"
	cfg.Server.Port = 0
	assert.Error(t, Validate(cfg))
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paintassistant.toml")

	require.NoError(t, InitConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8888, cfg.Server.Port)

	assert.Error(t, InitConfig(path), "must refuse to overwrite an existing file")
}
