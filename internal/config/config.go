package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type ProcessingConfig struct {
	// MaxProcessingTime is a Go duration string ("30s", "1m"). It caps a
	// whole document run unless the request carries its own budget.
	MaxProcessingTime string   `toml:"max_processing_time"`
	DefaultAccuracy   string   `toml:"default_accuracy"`
	DisabledEngines   []string `toml:"disabled_engines"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type LoggingConfig struct {
	Debug bool `toml:"debug"`
}

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Processing ProcessingConfig `toml:"processing"`
	LLM        LLMConfig        `toml:"llm"`
	Logging    LoggingConfig    `toml:"logging"`
}

var accuracyValues = map[string]bool{
	"standard":     true,
	"high":         true,
	"near-perfect": true,
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Processing: ProcessingConfig{
			MaxProcessingTime: "30s",
			DefaultAccuracy:   "standard",
		},
	}
}

// Load reads the TOML file at path, applies environment overrides and
// validates the result. A missing file is not an error: defaults plus the
// environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
		}
	case os.IsNotExist(err):
		// Fall through to env overrides.
	default:
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.Processing.MaxProcessingTime); err != nil {
		return fmt.Errorf("invalid processing.max_processing_time '%s': %w", c.Processing.MaxProcessingTime, err)
	}
	if !accuracyValues[c.Processing.DefaultAccuracy] {
		return fmt.Errorf("invalid processing.default_accuracy '%s' (want standard, high or near-perfect)", c.Processing.DefaultAccuracy)
	}
	return nil
}

// ProcessingBudget returns the configured per-document time budget.
func (c *Config) ProcessingBudget() time.Duration {
	d, err := time.ParseDuration(c.Processing.MaxProcessingTime)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
