package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid pipeline config")

// Config is a pipeline definition: ordered filters plus an optional target.
type Config struct {
	Version  int            `yaml:"version"`
	Settings Settings       `yaml:"settings"`
	Filters  []FilterConfig `yaml:"filters"`
	Target   *TargetConfig  `yaml:"target,omitempty"`
}

// Settings contains global pipeline settings.
type Settings struct {
	LogLevel string `yaml:"log_level"`
	// Output is where filters and targets write: "stdout", "stderr" or a file path.
	Output string `yaml:"output"`
}

// FilterConfig declares one filter. Kind selects the implementation; Options
// are decoded by the implementation's factory.
type FilterConfig struct {
	Name    string         `yaml:"name,omitempty"`
	Kind    string         `yaml:"kind"`
	Options map[string]any `yaml:"options,omitempty"`
}

// TargetConfig declares the terminal step.
type TargetConfig struct {
	Kind    string         `yaml:"kind"`
	Options map[string]any `yaml:"options,omitempty"`
}

// Load reads and validates a YAML pipeline file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates YAML pipeline data.
func LoadBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Version != 1 {
		return fmt.Errorf("%w: unsupported version %d (expected 1)", ErrInvalidConfig, c.Version)
	}

	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = DefaultLogLevel
	}
	if _, err := ParseLevel(c.Settings.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Settings.Output == "" {
		c.Settings.Output = DefaultOutput
	}

	for i := range c.Filters {
		f := &c.Filters[i]
		if f.Kind == "" {
			return fmt.Errorf("%w: filter %d: kind is required", ErrInvalidConfig, i)
		}
		if f.Name == "" {
			f.Name = f.Kind
		}
	}

	if c.Target != nil && c.Target.Kind == "" {
		c.Target.Kind = DefaultTargetKind
	}
	return nil
}

// ParseLevel maps a config log level onto slog.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", s)
	}
	return level, nil
}

// DefaultConfig returns the canonical pipeline used when no config file is
// given: authentication and debug filters in front of a console target.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Settings: Settings{
			LogLevel: DefaultLogLevel,
			Output:   DefaultOutput,
		},
		Filters: []FilterConfig{
			{Name: "authentication", Kind: "authentication"},
			{Name: "debug", Kind: "debug"},
		},
		Target: &TargetConfig{Kind: DefaultTargetKind},
	}
}

// Marshal serializes the pipeline for display/export.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
