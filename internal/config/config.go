// Package config handles loading configuration from .mwconfrc.yaml files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/emmalexandria/fetch-mediawiki-configuration/internal/output"
)

// DefaultConfigFileName is the default configuration file name.
const DefaultConfigFileName = ".mwconfrc.yaml"

const (
	// AppName names the per-user config directory.
	AppName = "mwconf"
	// UserConfigFileName is the file name inside the per-user config directory.
	UserConfigFileName = "config.yaml"
)

// Config represents the complete configuration structure.
type Config struct {
	// Namespaces are extra canonical namespace names to extract, in addition
	// to Category and File. Glob patterns are matched against every
	// canonical name of the site.
	// Example: "Template", "User*"
	Namespaces []string `yaml:"namespaces"`

	Ignore IgnoreConfig `yaml:"ignore"`
	Output OutputConfig `yaml:"output"`
}

// IgnoreConfig holds rules for dropping values from the extracted sets.
type IgnoreConfig struct {
	// Values are exact values to drop, compared lowercase.
	// Example: "mailto:", "gallery"
	Values []string `yaml:"values"`

	// Patterns are glob patterns for value matching.
	// Example: "irc*", "bitcoin:*"
	Patterns []string `yaml:"patterns"`

	// Regex are regular expression patterns for value matching.
	// Example: "^(sip|sips):$"
	Regex []string `yaml:"regex"`
}

// OutputConfig holds output defaults.
type OutputConfig struct {
	// Format is the stdout format when --format is not given.
	Format string `yaml:"format"`
}

// Load reads configuration from .mwconfrc.yaml in the current directory.
// Returns an empty config if the file doesn't exist (not an error).
// Returns an error only if the file exists but cannot be parsed.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFileName)
}

// LoadFrom reads configuration from a specific path.
// Returns an empty config if the file doesn't exist (not an error).
// Returns an error only if the file exists but cannot be parsed.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		// File not found is not an error - just return empty config
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UserConfigPath returns the per-user config file path.
// On Linux: ~/.config/mwconf/config.yaml
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, UserConfigFileName)
}

// LoadUser reads the per-user config file.
// Returns an empty config if the file doesn't exist.
func LoadUser() (*Config, error) {
	return LoadFrom(UserConfigPath())
}

// FindAndLoad searches for a config file starting from the given directory
// and walking up to parent directories until it finds one or reaches root.
func FindAndLoad(startDir string) (*Config, error) {
	dir := startDir

	for {
		configPath := filepath.Join(dir, DefaultConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return LoadFrom(configPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, no config found
			return &Config{}, nil
		}
		dir = parent
	}
}

// Validate checks the namespace patterns and output format.
func (c *Config) Validate() error {
	for _, ns := range c.Namespaces {
		if _, err := glob.Compile(ns); err != nil {
			return fmt.Errorf("invalid namespace pattern %q: %w", ns, err)
		}
	}
	if c.Output.Format != "" && !output.IsValidFormat(c.Output.Format) {
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}
	return nil
}

// HasIgnoreRules returns true if any ignore rule is defined.
func (c *Config) HasIgnoreRules() bool {
	return len(c.Ignore.Values) > 0 ||
		len(c.Ignore.Patterns) > 0 ||
		len(c.Ignore.Regex) > 0
}

// IsEmpty returns true if the config sets nothing.
func (c *Config) IsEmpty() bool {
	return !c.HasIgnoreRules() && len(c.Namespaces) == 0 && c.Output.Format == ""
}

// Merge combines another config into this one.
// List fields are appended; a non-empty output format replaces ours.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	c.Namespaces = append(c.Namespaces, other.Namespaces...)
	c.Ignore.Values = append(c.Ignore.Values, other.Ignore.Values...)
	c.Ignore.Patterns = append(c.Ignore.Patterns, other.Ignore.Patterns...)
	c.Ignore.Regex = append(c.Ignore.Regex, other.Ignore.Regex...)
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
}
