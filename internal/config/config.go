// Package config holds the file-based configuration with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all vibebuilder configuration.
type Config struct {
	// LLM configures the text-generation collaborator.
	LLM LLMConfig `yaml:"llm"`

	// Link configures the connection to the remote application.
	Link LinkConfig `yaml:"link"`

	// Templates configures the scene template registry.
	Templates TemplatesConfig `yaml:"templates"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the generation backend.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

// LinkConfig configures the wire connection.
type LinkConfig struct {
	URL            string `yaml:"url"`
	ConnectTimeout string `yaml:"connect_timeout"`
	CommandTimeout string `yaml:"command_timeout"`
}

// TemplatesConfig configures the scene template registry.
type TemplatesConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:   "gemini-3-flash-preview",
			Timeout: "120s",
		},
		Link: LinkConfig{
			URL:            "ws://localhost:29551/",
			ConnectTimeout: "10s",
			CommandTimeout: "30s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment variables override either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("VIBE_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if url := os.Getenv("VIBE_WS_URL"); url != "" {
		c.Link.URL = url
	}
	if dir := os.Getenv("VIBE_TEMPLATE_DIR"); dir != "" {
		c.Templates.Dir = dir
	}
}

// Validate rejects configurations that cannot possibly work.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("no API key configured (set llm.api_key or GEMINI_API_KEY)")
	}
	if c.Link.URL == "" {
		return fmt.Errorf("no link URL configured")
	}
	return nil
}

// ConnectTimeout parses the link connect timeout, with a sane fallback.
func (c *Config) ConnectTimeout() time.Duration {
	return parseDuration(c.Link.ConnectTimeout, 10*time.Second)
}

// CommandTimeout parses the per-command timeout.
func (c *Config) CommandTimeout() time.Duration {
	return parseDuration(c.Link.CommandTimeout, 30*time.Second)
}

// LLMTimeout parses the generation call timeout.
func (c *Config) LLMTimeout() time.Duration {
	return parseDuration(c.LLM.Timeout, 120*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
