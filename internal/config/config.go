// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - Validation errors wrap ErrInvalidConfig, loading errors wrap ErrLoadConfig.
package config

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MinScore is the idea threshold used when a request does not set one.
	MinScore float64 `koanf:"min_score"`

	// MaxPosts caps the number of posts accepted in one request.
	MaxPosts int `koanf:"max_posts"`

	// MaxTickers caps tracked tickers, history entries and score map sizes per request.
	MaxTickers int `koanf:"max_tickers"`

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// PositiveWords and NegativeWords replace the built-in lexicon when set.
	PositiveWords []string `koanf:"positive_words"`
	NegativeWords []string `koanf:"negative_words"`
}

// New creates a Config holding the defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Addr:         ":9080",
		MinScore:     1.0,
		MaxPosts:     10_000,
		MaxTickers:   1_000,
		MaxBodyBytes: 4 << 20,
	}
}

// Validate checks the invariants Load enforces.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxPosts < 1:
		return fmt.Errorf("%w: max_posts must be positive", ErrInvalidConfig)
	case c.MaxTickers < 1:
		return fmt.Errorf("%w: max_tickers must be positive", ErrInvalidConfig)
	case c.MaxBodyBytes < 1:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	case math.IsNaN(c.MinScore) || math.IsInf(c.MinScore, 0):
		return fmt.Errorf("%w: min_score must be finite", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
