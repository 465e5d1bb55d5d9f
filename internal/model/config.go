package model

import "runtime"

// Config holds all runtime configuration.
// Hierarchy (highest to lowest priority): CLI flags, PAPERVERIFY_* env vars,
// config file, defaults.
type Config struct {
	Tolerance   ToleranceConfig   `yaml:"tolerance" mapstructure:"tolerance"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// ToleranceConfig controls the close-match tier.
// The wide (mismatch) tier is fixed at 10% and not configurable.
type ToleranceConfig struct {
	Pct float64 `yaml:"pct" mapstructure:"pct"`
}

// CacheConfig controls the parsed-observation cache
type CacheConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Quiet   bool `yaml:"quiet" mapstructure:"quiet"` // Only show mismatches
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LLMConfig controls the optional report summarizer
type LLMConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"`
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"-" mapstructure:"-"` // From env only, never persisted
	BaseURL           string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Tolerance: ToleranceConfig{Pct: 1.0},
		Cache:     CacheConfig{Enabled: true},
		Output:    OutputConfig{},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		LLM: LLMConfig{
			Model:             "gpt-4o-mini",
			RequestsPerSecond: 1,
			BurstSize:         1,
		},
	}
}
