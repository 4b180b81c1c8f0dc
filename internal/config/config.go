// Package config provides configuration loading and structs for the Scout server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gatherly/scout/internal/relevance"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool              `yaml:"debug"`
	Server    ServerConfig      `yaml:"server"`
	Storage   StorageConfig     `yaml:"storage"`
	Search    SearchConfig      `yaml:"search"`
	Relevance relevance.Weights `yaml:"relevance"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds database paths.
type StorageConfig struct {
	// DatabasePath is the entity database the read gateways query.
	DatabasePath string `yaml:"database_path"`
	// AnalyticsPath is the append-only search-analytics database.
	AnalyticsPath string `yaml:"analytics_path"`
}

// SearchConfig holds search and suggestion limits.
type SearchConfig struct {
	DefaultPageSize      int `yaml:"default_page_size"`
	MaxPageSize          int `yaml:"max_page_size"`
	DefaultSuggestions   int `yaml:"default_suggestions"`
	MaxSuggestions       int `yaml:"max_suggestions"`
	DefaultPopularTerms  int `yaml:"default_popular_terms"`
	MaxPopularTerms      int `yaml:"max_popular_terms"`
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.AnalyticsPath = expandPath(cfg.Storage.AnalyticsPath, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
