package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"componentdiff/internal/domain"
)

const (
	DefaultDefaultsDir = "default_components"
	DefaultCorpusDir   = "."
	DefaultConfigFile  = "componentdiff.yaml"
	DefaultWorkers     = 1
)

// Config holds the tool settings
type Config struct {
	DefaultsDir string           `yaml:"defaults_dir"`
	CorpusDir   string           `yaml:"corpus_dir"`
	Threshold   float64          `yaml:"threshold"`
	Workers     int              `yaml:"workers"`
	HistoryDB   string           `yaml:"history_db"`
	Strategies  []StrategyConfig `yaml:"strategies"`
}

// StrategyConfig declares a synthesis rule table for one component type
type StrategyConfig struct {
	Type   string        `yaml:"type"`
	Fields []FieldConfig `yaml:"fields"`
}

// FieldConfig declares how one field of a synthesized default is computed
type FieldConfig struct {
	Path    string `yaml:"path"`
	Rule    string `yaml:"rule"`              // median, mode or literal
	Literal string `yaml:"literal,omitempty"` // Only for rule: literal
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		DefaultsDir: DefaultDefaultsDir,
		CorpusDir:   DefaultCorpusDir,
		Threshold:   domain.SelectionThreshold,
		Workers:     DefaultWorkers,
		HistoryDB:   DefaultHistoryPath(),
	}
}

// ConfigPath returns the config file from COMPONENTDIFF_CONFIG env var,
// falling back to DefaultConfigFile.
func ConfigPath() string {
	if env := os.Getenv("COMPONENTDIFF_CONFIG"); env != "" {
		return env
	}
	return DefaultConfigFile
}

// DefaultHistoryPath returns $XDG_DATA_HOME/componentdiff/history.db
func DefaultHistoryPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "componentdiff", "history.db")
}

// Load reads the config file at path. A missing file yields the defaults.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if env := os.Getenv("COMPONENTDIFF_DEFAULTS"); env != "" {
		c.DefaultsDir = env
	}
	if env := os.Getenv("COMPONENTDIFF_CORPUS"); env != "" {
		c.CorpusDir = env
	}
	if env := os.Getenv("COMPONENTDIFF_HISTORY"); env != "" {
		c.HistoryDB = env
	}
}

// Validate checks ranges and every declared strategy
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("threshold must be between 0 and 100, got %g", c.Threshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	for _, s := range c.Strategies {
		if err := s.toDomain().Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Registry returns the built-in strategies with the configured ones added or replacing them
func (c *Config) Registry() (*domain.Registry, error) {
	registry := domain.DefaultRegistry()
	for _, s := range c.Strategies {
		if err := registry.Register(s.toDomain()); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (s StrategyConfig) toDomain() domain.Strategy {
	fields := make([]domain.FieldRule, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = domain.FieldRule{
			Path:    f.Path,
			Rule:    domain.Rule(f.Rule),
			Literal: f.Literal,
		}
	}
	return domain.Strategy{Type: domain.ComponentType(s.Type), Fields: fields}
}
