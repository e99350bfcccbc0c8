// Package config loads slidegrade settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/slidegrade/score"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "slidegrade.yaml"

// Config holds all slidegrade configuration.
type Config struct {
	// Scoring tolerances and comparison mode
	Scoring ScoringConfig `yaml:"scoring"`

	// Parsed presentation cache
	Cache CacheConfig `yaml:"cache"`

	// Directory watching
	Watch WatchConfig `yaml:"watch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ScoringConfig configures the comparer.
type ScoringConfig struct {
	AngleTolerance  float64 `yaml:"angle_tolerance"`  // degrees
	OffsetTolerance float64 `yaml:"offset_tolerance"` // points
	BackColor       string  `yaml:"back_color"`       // symmetric, legacy
	Workers         int     `yaml:"workers"`
}

// CacheConfig configures the parsed presentation cache.
type CacheConfig struct {
	TTL     string `yaml:"ttl"`
	Cleanup string `yaml:"cleanup"`
}

// WatchConfig configures the submission watcher.
type WatchConfig struct {
	Debounce   string   `yaml:"debounce"`
	Extensions []string `yaml:"extensions"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			AngleTolerance:  score.DefaultAngleTolerance,
			OffsetTolerance: score.DefaultOffsetTolerance,
			BackColor:       score.BackColorSymmetric.String(),
			Workers:         1,
		},

		Cache: CacheConfig{
			TTL:     "30m",
			Cleanup: "1h",
		},

		Watch: WatchConfig{
			Debounce:   "500ms",
			Extensions: []string{".pptx"},
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
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

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SLIDEGRADE_ANGLE_TOLERANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SLIDEGRADE_ANGLE_TOLERANCE: %w", err)
		}
		c.Scoring.AngleTolerance = f
	}
	if v := os.Getenv("SLIDEGRADE_OFFSET_TOLERANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SLIDEGRADE_OFFSET_TOLERANCE: %w", err)
		}
		c.Scoring.OffsetTolerance = f
	}
	if v := os.Getenv("SLIDEGRADE_BACK_COLOR"); v != "" {
		c.Scoring.BackColor = v
	}
	if v := os.Getenv("SLIDEGRADE_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SLIDEGRADE_WORKERS: %w", err)
		}
		c.Scoring.Workers = n
	}
	if v := os.Getenv("SLIDEGRADE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Scoring.AngleTolerance < 0 {
		return fmt.Errorf("scoring.angle_tolerance must not be negative: %v", c.Scoring.AngleTolerance)
	}
	if c.Scoring.OffsetTolerance < 0 {
		return fmt.Errorf("scoring.offset_tolerance must not be negative: %v", c.Scoring.OffsetTolerance)
	}
	if c.Scoring.Workers < 1 {
		return fmt.Errorf("scoring.workers must be at least 1: %d", c.Scoring.Workers)
	}
	if _, err := score.ParseBackColorMode(c.Scoring.BackColor); err != nil {
		return fmt.Errorf("scoring.back_color: %w", err)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console: %q", c.Logging.Format)
	}
	return nil
}

// ScoreOptions converts the scoring section to comparer options.
func (c *Config) ScoreOptions() (score.Options, error) {
	mode, err := score.ParseBackColorMode(c.Scoring.BackColor)
	if err != nil {
		return score.Options{}, err
	}
	return score.Options{
		AngleTolerance:  c.Scoring.AngleTolerance,
		OffsetTolerance: c.Scoring.OffsetTolerance,
		BackColor:       mode,
		Workers:         c.Scoring.Workers,
	}, nil
}

// GetCacheTTL returns the cache entry lifetime as a duration.
func (c *Config) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// GetCacheCleanup returns the cache cleanup interval as a duration.
func (c *Config) GetCacheCleanup() time.Duration {
	d, err := time.ParseDuration(c.Cache.Cleanup)
	if err != nil {
		return time.Hour
	}
	return d
}

// GetWatchDebounce returns how long the watcher waits for writes to settle.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}
