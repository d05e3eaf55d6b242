package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the full Taskdeck configuration
type Config struct {
	Store   StoreConfig   `json:"store"`
	Enrich  EnrichConfig  `json:"enrich"`
	Request RequestConfig `json:"request"`
	Log     LogConfig     `json:"log"`
}

// StoreConfig contains remote task store connection settings
type StoreConfig struct {
	URL     string `json:"url"`
	AnonKey string `json:"anonKey"`
}

// EnrichConfig contains enrichment webhook settings
type EnrichConfig struct {
	WebhookURL string `json:"webhookUrl"`
}

// RequestConfig contains remote call settings
type RequestConfig struct {
	TimeoutMs int `json:"timeoutMs"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Request: RequestConfig{
			TimeoutMs: 10000,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(homeDir, ".taskdeck", "taskdeck.log"),
		},
	}
}

// LoadConfig loads configuration from a directory with priority:
// 1. Environment variables (optionally via a .env file in the directory)
// 2. .taskdeck.json in the directory
// 3. Defaults
//
// Store credentials come from the environment in practice; the JSON
// file exists for the non-secret knobs.
func LoadConfig(dir string) (*Config, error) {
	cfg := DefaultConfig()

	taskdeckPath := filepath.Join(dir, ".taskdeck.json")
	if data, err := os.ReadFile(taskdeckPath); err == nil {
		var fileCfg Config
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse .taskdeck.json: %w", err)
		}
		cfg = MergeWithDefaults(&fileCfg)
	}

	// Missing .env is fine; the variables may be exported directly.
	_ = godotenv.Load(filepath.Join(dir, ".env"))
	applyEnv(cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TASKDECK_STORE_URL"); v != "" {
		cfg.Store.URL = v
	}
	if v := os.Getenv("TASKDECK_STORE_ANON_KEY"); v != "" {
		cfg.Store.AnonKey = v
	}
	if v := os.Getenv("TASKDECK_ENRICH_WEBHOOK_URL"); v != "" {
		cfg.Enrich.WebhookURL = v
	}
	if v := os.Getenv("TASKDECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks that the settings required to reach the backends are
// present.
func (c *Config) Validate() error {
	if c.Store.URL == "" {
		return errors.New("store url is not configured (set TASKDECK_STORE_URL)")
	}
	if c.Store.AnonKey == "" {
		return errors.New("store anon key is not configured (set TASKDECK_STORE_ANON_KEY)")
	}
	if c.Enrich.WebhookURL == "" {
		return errors.New("enrichment webhook url is not configured (set TASKDECK_ENRICH_WEBHOOK_URL)")
	}
	return nil
}

// SaveConfig saves configuration to the specified path
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Request.TimeoutMs == 0 {
		cfg.Request.TimeoutMs = defaults.Request.TimeoutMs
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}

	return cfg
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
