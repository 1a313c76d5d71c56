// Package config loads the carbonroute configuration: defaults, an
// optional YAML file, and environment overrides, merged in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/carbonroute/carbonroute/internal/engine"
)

// Environment variable names recognized by Load.
const (
	EnvLogLevel          = "CARBONROUTE_LOG_LEVEL"
	EnvLogFormat         = "CARBONROUTE_LOG_FORMAT"
	EnvFactorsFile       = "CARBONROUTE_FACTORS_FILE"
	EnvRoundingPrecision = "CARBONROUTE_ROUNDING_PRECISION"
	EnvBatchConcurrency  = "CARBONROUTE_BATCH_CONCURRENCY"
)

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// FactorsConfig configures the emission-factor provider.
type FactorsConfig struct {
	// File is an external YAML factor dataset; empty means the embedded
	// GLEC dataset.
	File string `yaml:"file,omitempty"`

	// CacheSize bounds the factor lookup cache.
	CacheSize int `yaml:"cache_size"`

	// CacheTTL expires cached lookups.
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// CalculationConfig carries engine-level defaults.
type CalculationConfig struct {
	// RoundingPrecision is the default decimal precision (0..6).
	RoundingPrecision int `yaml:"rounding_precision"`
}

// BatchConfig carries batch orchestration defaults.
type BatchConfig struct {
	// MaxConcurrency bounds parallel batch execution; 0 means NumCPU.
	MaxConcurrency int `yaml:"max_concurrency"`
}

// Config is the root configuration document.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Factors     FactorsConfig     `yaml:"factors"`
	Calculation CalculationConfig `yaml:"calculation"`
	Batch       BatchConfig       `yaml:"batch"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Factors: FactorsConfig{
			CacheSize: 256,
			CacheTTL:  15 * time.Minute,
		},
		Calculation: CalculationConfig{
			RoundingPrecision: engine.DefaultRoundingPrecision,
		},
	}
}

// Load builds the effective configuration: defaults, overlaid with the
// YAML file at path (when it exists), overlaid with environment
// variables. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = defaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Missing config file means defaults apply.
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, unmarshalErr)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot honor.
func (c *Config) Validate() error {
	if p := c.Calculation.RoundingPrecision; p < 0 || p > engine.MaxRoundingPrecision {
		return fmt.Errorf("calculation.rounding_precision must be within [0,%d], got %d",
			engine.MaxRoundingPrecision, p)
	}
	if c.Batch.MaxConcurrency < 0 {
		return fmt.Errorf("batch.max_concurrency cannot be negative, got %d", c.Batch.MaxConcurrency)
	}
	return nil
}

// applyEnv overlays recognized environment variables onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvFactorsFile); v != "" {
		c.Factors.File = v
	}
	if v := os.Getenv(EnvRoundingPrecision); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Calculation.RoundingPrecision = p
		}
	}
	if v := os.Getenv(EnvBatchConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Batch.MaxConcurrency = n
		}
	}
}

// defaultPath locates ~/.carbonroute/config.yaml, or empty when the home
// directory cannot be resolved.
func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".carbonroute", "config.yaml")
}
