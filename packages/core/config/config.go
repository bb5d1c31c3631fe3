package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the longboard configuration
type Config struct {
	Client   string            `json:"client,omitempty" yaml:"client,omitempty"`
	Jar      string            `json:"jar,omitempty" yaml:"jar,omitempty"`
	Timeout  int               `json:"timeout,omitempty" yaml:"timeout,omitempty"` // milliseconds
	Insecure *bool             `json:"insecure,omitempty" yaml:"insecure,omitempty"`
	NoColor  *bool             `json:"noColor,omitempty" yaml:"noColor,omitempty"`
	Headers  map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"` // Default headers for all requests
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetInsecure returns the insecure-TLS setting, defaulting to false
func (c *Config) GetInsecure() bool {
	return getBool(c.Insecure, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".longboard.config.json",
	"longboard.config.json",
	".longboardrc",
	".longboardrc.json",
	".longboardrc.yaml",
	".longboardrc.yml",
}

// LoadConfig loads configuration from the specified path or searches
// the current directory for one of ConfigFilenames. No config file at
// all yields an empty config, not an error.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}
	return &Config{}, nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return cfg, nil
}
