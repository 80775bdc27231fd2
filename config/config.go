package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the grimoire tool.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Catalog CatalogConfig `yaml:"catalog"`
	Lookup  LookupConfig  `yaml:"lookup"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig holds conversion defaults.
type ConvertConfig struct {
	Format string `yaml:"format"` // "csv" or "json"
}

// CatalogConfig holds spellbook cataloging configuration.
type CatalogConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// LookupConfig holds lookup defaults.
type LookupConfig struct {
	Limit int `yaml:"limit"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			Format: "csv",
		},
		Catalog: CatalogConfig{
			Includes: []string{"**/*.txt"},
			Excludes: []string{"**/.grimoire/**", "**/.git/**"},
		},
		Lookup: LookupConfig{
			Limit: 20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for grimoire.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "grimoire.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".grimoire", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SpellbookPath returns the path to the spellbook database.
func SpellbookPath(dir string) string {
	return filepath.Join(dir, ".grimoire", "spellbook.db")
}

// EnsureGrimoireDir ensures the .grimoire directory exists.
func EnsureGrimoireDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".grimoire"), 0755)
}
