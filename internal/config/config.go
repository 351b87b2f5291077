package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	DBPath     string     `yaml:"db_path"`
	LocalePath string     `yaml:"locale_path,omitempty"`
	LogLevel   string     `yaml:"log_level"`
	Thresholds Thresholds `yaml:"thresholds"`
}

// Thresholds holds the confidence and match-score gates. The defaults
// were tuned on Vietnamese shop transcripts; lowering them trades missed
// commands for wrong ones.
type Thresholds struct {
	MinConfidence float64 `yaml:"min_confidence"`
	ProductMatch  float64 `yaml:"product_match"`
	CustomerMatch float64 `yaml:"customer_match"`
	Suggestion    float64 `yaml:"suggestion"`
}

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		DBPath:     filepath.Join(homeDir, ".voicepilot", "catalog.db"),
		LocalePath: "",
		LogLevel:   "info",
		Thresholds: Thresholds{
			MinConfidence: 0.7,
			ProductMatch:  0.3,
			CustomerMatch: 0.5,
			Suggestion:    0.6,
		},
	}
}

// Load reads configuration from file, creating it with defaults if it
// doesn't exist.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigPath returns the default config file path.
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".voicepilot", "config.yaml")
}
