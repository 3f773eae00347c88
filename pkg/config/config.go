// Package config loads and persists the guideme configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration.
type Config struct {
	API       APIConfig    `json:"api"`
	Chat      ChatConfig   `json:"chat"`
	Speech    SpeechConfig `json:"speech"`
	LogLevel  string       `json:"log_level"`
	LogFile   string       `json:"log_file"`
	LogFormat string       `json:"log_format"`
}

// APIConfig holds the Guide Me endpoint configuration.
type APIConfig struct {
	BaseURL string `json:"base_url"`
	// TimeoutSeconds bounds each request; 0 waits indefinitely.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// ChatConfig holds the fixed tags sent with every exchange.
type ChatConfig struct {
	Model string `json:"model"`
	Role  string `json:"role"`
}

// SpeechConfig holds the text-to-speech capability configuration.
type SpeechConfig struct {
	// Command overrides the speech command; empty probes say/espeak/spd-say.
	Command string `json:"command"`
}

// Default returns a configuration with default values.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "http://localhost:5000",
			TimeoutSeconds: 0,
		},
		Chat: ChatConfig{
			Model: "gemini-pro-latest",
			Role:  "Tourist",
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load reads the configuration from path, creating it with defaults when it
// does not exist. Fields missing from older files are backfilled.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	applyMigrationDefaults(&cfg)
	return cfg, nil
}

// applyMigrationDefaults backfills fields that older config files lack.
func applyMigrationDefaults(cfg *Config) {
	def := Default()
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = def.Chat.Model
	}
	if cfg.Chat.Role == "" {
		cfg.Chat.Role = def.Chat.Role
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = def.LogFormat
	}
}

// Save writes the configuration to the specified path.
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must not be negative, got: %d", c.API.TimeoutSeconds)
	}
	if c.Chat.Model == "" {
		return fmt.Errorf("chat.model is required")
	}
	if c.Chat.Role == "" {
		return fmt.Errorf("chat.role is required")
	}
	return nil
}

// GetConfigPath returns the configuration file path, honoring the
// GUIDEME_CONFIG environment override.
func GetConfigPath() string {
	if path := os.Getenv("GUIDEME_CONFIG"); path != "" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".guideme", "config.json")
	}
	return filepath.Join(homeDir, ".guideme", "config.json")
}
