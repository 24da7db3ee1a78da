/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server's optional YAML configuration (SPEC_FULL.md §4.H).
// None of these fields are required for correctness — a server started
// with no config file at all uses DefaultConfig(). The server binary
// reads Bind and Admin; ShutdownGrace and Logging are loaded and saved
// with the rest of the file, but no server code consults them, so the
// shutdown drain has no time bound and log output is not filtered by
// level.
type Config struct {
	Bind          string        `yaml:"bind"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace"`
	Admin         Admin         `yaml:"admin"`
	Logging       Logging       `yaml:"logging"`
}

// Admin controls the read-only diagnostics/metrics HTTP endpoint
// (SPEC_FULL.md §4.J). It is entirely separate from the line-oriented
// wire protocol and never mutates the store.
type Admin struct {
	Enabled bool   `yaml:"enabled"`
	Bind    string `yaml:"bind"`
}

// Logging holds the configured log level (SPEC_FULL.md §7). The level is
// stored and round-tripped only; the server's stdlib loggers do not read
// it.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no config file is
// given: bind to all interfaces, a five second shutdown grace period,
// diagnostics disabled, and info-level logging.
func DefaultConfig() *Config {
	return &Config{
		Bind:          "0.0.0.0",
		ShutdownGrace: 5 * time.Second,
		Admin: Admin{
			Enabled: false,
			Bind:    "127.0.0.1:9090",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig reads and parses a YAML config file on top of
// DefaultConfig(), so a file that sets only one field leaves the rest
// at their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to configPath as YAML with secure permissions,
// creating the parent directory if needed.
func SaveConfig(cfg *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the
// current platform: ~/.config/kvtree/config.yaml.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./kvtree.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "kvtree")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists reports whether a configuration file exists at configPath.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
