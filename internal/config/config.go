package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port     int    `koanf:"port"`
		LogLevel string `koanf:"log_level"`
	} `koanf:"server"`

	AI struct {
		Provider            string  `koanf:"provider"` // openai | gemini | ollama
		APIKey              string  `koanf:"api_key"`
		Model               string  `koanf:"model"`
		BaseURL             string  `koanf:"base_url"`
		IntentTemperature   float64 `koanf:"intent_temperature"`
		DecisionTemperature float64 `koanf:"decision_temperature"`
		RequestsPerSecond   float64 `koanf:"requests_per_second"`
	} `koanf:"ai"`

	Collaborators struct {
		ProjectsBaseURL string `koanf:"projects_base_url"`
		BlogBaseURL     string `koanf:"blog_base_url"`
		PaintersBaseURL string `koanf:"painters_base_url"`
	} `koanf:"collaborators"`

	UI struct {
		ToolOverlayDelay   time.Duration `koanf:"tool_overlay_delay"`
		ToolOverlayTTL     time.Duration `koanf:"tool_overlay_ttl"`
		TextOverlayDelay   time.Duration `koanf:"text_overlay_delay"`
		TextOverlayTTL     time.Duration `koanf:"text_overlay_ttl"`
		ErrorOverlayTTL    time.Duration `koanf:"error_overlay_ttl"`
		LoadingOverlayTTL  time.Duration `koanf:"loading_overlay_ttl"`
	} `koanf:"ui"`
}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"server.port":                     8888,
		"server.log_level":                "info",
		"ai.provider":                     "openai",
		"ai.model":                        "gpt-4o",
		"ai.intent_temperature":           0.0,
		"ai.decision_temperature":         0.1,
		"ai.requests_per_second":          2.0,
		"collaborators.projects_base_url": "http://localhost:3000",
		"collaborators.blog_base_url":     "https://filliboya.com",
		"collaborators.painters_base_url": "https://filliboya.com",
		"ui.tool_overlay_delay":           300 * time.Millisecond,
		"ui.tool_overlay_ttl":             5 * time.Second,
		"ui.text_overlay_delay":           10 * time.Millisecond,
		"ui.text_overlay_ttl":             6 * time.Second,
		"ui.error_overlay_ttl":            6 * time.Second,
		"ui.loading_overlay_ttl":          2 * time.Second,
	}, "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		// Try default locations
		defaultPaths := []string{"./paintassistant.toml", "$HOME/.paintassistant.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix PAINTCHAT_
	k.Load(env.Provider("PAINTCHAT_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "PAINTCHAT_")), "_", ".", 1)
	}), nil)

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# Paint Assistant Configuration

[server]
port = 8888
log_level = "info"

[ai]
provider = "openai"
api_key = "your-api-key"
model = "gpt-4o"
decision_temperature = 0.1

[collaborators]
projects_base_url = "http://localhost:3000"
blog_base_url = "https://filliboya.com"
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	switch config.AI.Provider {
	case "openai", "gemini":
		if config.AI.APIKey == "" {
			return fmt.Errorf("%s api_key is required", config.AI.Provider)
		}
	case "ollama":
		// Local models need no key.
	default:
		return fmt.Errorf("unsupported AI provider %q", config.AI.Provider)
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", config.Server.Port)
	}

	return nil
}
