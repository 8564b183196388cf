// Package config loads service settings from an optional YAML file merged
// with HAWKSBILL__-prefixed environment variables (env wins). Nested keys use
// a double underscore, e.g. HAWKSBILL__GEOCODE__ENABLED=true.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "HAWKSBILL__"

// GeocodeConfig controls the feature-flagged load-time country enrichment.
type GeocodeConfig struct {
	Enabled    bool          `koanf:"enabled"`
	BaseURL    string        `koanf:"base_url"`
	Timeout    time.Duration `koanf:"timeout"`
	CacheSize  int           `koanf:"cache_size"`
	MaxLookups int           `koanf:"max_lookups"` // 0 = unlimited
	UserAgent  string        `koanf:"user_agent"`  // Nominatim requires an identifying agent
}

// Config holds all service settings.
type Config struct {
	HTTPAddr        string        `koanf:"http_addr"`
	DatasetPath     string        `koanf:"dataset_path"`
	LogLevel        string        `koanf:"log_level"`
	LogFormat       string        `koanf:"log_format"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	Geocode GeocodeConfig `koanf:"geocode"`
}

// Load merges the YAML file at path (skipped when absent or path is empty)
// with environment variables, applies defaults, and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, "__", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load config env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(c *Config) {
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.Geocode.BaseURL == "" {
		c.Geocode.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if c.Geocode.Timeout == 0 {
		c.Geocode.Timeout = 5 * time.Second
	}
	if c.Geocode.CacheSize == 0 {
		c.Geocode.CacheSize = 1000
	}
	if c.Geocode.MaxLookups == 0 {
		c.Geocode.MaxLookups = 500
	}
	if c.Geocode.UserAgent == "" {
		c.Geocode.UserAgent = "hawksbill-analytics/1.0"
	}
}

func validate(c *Config) error {
	if c.DatasetPath == "" {
		return errors.New("dataset_path is required")
	}
	if c.ShutdownTimeout < 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	if c.Geocode.Enabled {
		if c.Geocode.Timeout <= 0 {
			return errors.New("geocode.timeout must be positive")
		}
		if c.Geocode.CacheSize <= 0 {
			return errors.New("geocode.cache_size must be positive")
		}
	}
	return nil
}
