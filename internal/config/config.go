package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hexatransit/logocheck/internal/assets"
	"github.com/hexatransit/logocheck/internal/feed"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".logocheck.yaml"

// Config represents the top-level .logocheck.yaml configuration.
type Config struct {
	LogoDir     string        `yaml:"logo_dir" validate:"required"`
	Timeout     int           `yaml:"timeout" validate:"gt=0"`
	MaxListed   int           `yaml:"max_listed" validate:"gt=0"`
	StripPrefix string        `yaml:"strip_prefix"`
	BaseDir     string        `yaml:"base_dir"`
	Sources     []feed.Source `yaml:"sources" validate:"required,min=1,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Source returns the configured source called name.
func (c *Config) Source(name string) (feed.Source, error) {
	s, ok := feed.FindSource(c.Sources, name)
	if !ok {
		return feed.Source{}, fmt.Errorf("no GTFS source named %q", name)
	}
	return s, nil
}

// Load reads a .logocheck.yaml file from disk. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogoDir:     "logo",
		Timeout:     30,
		MaxListed:   feed.DefaultMaxListed,
		StripPrefix: assets.DefaultStripPrefix,
		Sources:     feed.DefaultSources(),
	}
}
