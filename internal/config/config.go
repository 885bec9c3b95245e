package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProvider          = "openai"
	DefaultModel             = "gpt-4o-mini"
	DefaultMaxCustomizations = 3
)

type Config struct {
	AI struct {
		Provider   string `yaml:"provider"`
		Model      string `yaml:"model"`       // storyteller + reviser model
		JudgeModel string `yaml:"judge_model"` // editor/judge model, defaults to Model
		APIKey     string `yaml:"api_key"`
		BaseURL    string `yaml:"base_url"`
	} `yaml:"ai"`
	Session struct {
		MaxCustomizations int `yaml:"max_customizations"`
	} `yaml:"session"`
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	var cfg Config

	// 2. Load YAML config when present; a missing file just means defaults
	if file, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if provider := os.Getenv("BEDTIME_AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = provider
	}
	if model := os.Getenv("BEDTIME_MODEL"); model != "" {
		cfg.AI.Model = model
	}
	if apiKey := os.Getenv("BEDTIME_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if maxStr := os.Getenv("BEDTIME_MAX_CUSTOMIZATIONS"); maxStr != "" {
		if n, err := strconv.Atoi(maxStr); err == nil && n >= 0 {
			cfg.Session.MaxCustomizations = n
		}
	}

	applyDefaults(&cfg)

	// Provider-specific key fallbacks
	if cfg.AI.APIKey == "" {
		switch cfg.AI.Provider {
		case "openai":
			cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
		case "gemini":
			cfg.AI.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}

	return &cfg, nil
}

// Validate reports startup problems that must abort before any model call.
func (c *Config) Validate() error {
	if c.AI.APIKey == "" {
		return fmt.Errorf("AI API key not configured: set ai.api_key in config.yaml or the BEDTIME_API_KEY environment variable")
	}
	if c.AI.Provider != "openai" && c.AI.Provider != "gemini" {
		return fmt.Errorf("unsupported AI provider %q (expected openai or gemini)", c.AI.Provider)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = DefaultProvider
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = DefaultModel
	}
	if cfg.AI.JudgeModel == "" {
		cfg.AI.JudgeModel = cfg.AI.Model
	}
	if cfg.Session.MaxCustomizations == 0 {
		cfg.Session.MaxCustomizations = DefaultMaxCustomizations
	}
}
