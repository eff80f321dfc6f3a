// Package grep is the host side of linegrep: configuration, file discovery,
// line iteration, match printing, and the run loop that ties them to the
// engine. The engine itself knows nothing about files or terminals; its
// whole contract here is Compile and SearchLine.
package grep

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds one invocation's settings. Defaults come from DefaultConfig,
// overridden by a config file and environment, overridden by CLI flags.
type Config struct {
	// Pattern is the extended regex to search for.
	Pattern string `mapstructure:"-"`

	// Paths are the files or directories to search. Empty means stdin
	// (or the current directory when Recursive is set).
	Paths []string `mapstructure:"-"`

	// Recursive expands directory paths to every regular file beneath them.
	Recursive bool `mapstructure:"-"`

	// Color controls match highlighting: auto, always or never.
	Color string `mapstructure:"color"`

	// LineNumbers prefixes each printed match with its 1-based line number.
	LineNumbers bool `mapstructure:"line_numbers"`

	// CountOnly prints the number of matching lines per input instead of
	// the lines themselves.
	CountOnly bool `mapstructure:"-"`

	// Hidden includes dot-files and dot-directories in recursive walks.
	Hidden bool `mapstructure:"hidden"`

	// MaxDepth bounds recursive walks; 0 means unlimited.
	MaxDepth int `mapstructure:"max_depth"`

	// Profile prints engine counters to stderr after the run.
	Profile bool `mapstructure:"-"`

	// LogLevel sets diagnostic verbosity: trace, debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Color:    "auto",
		LogLevel: "error",
	}
}

// LoadConfig merges the defaults with an optional linegrep.yaml (searched in
// the working directory and $HOME/.config/linegrep) and LINEGREP_* env vars.
// CLI flags are layered on top by the caller.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("linegrep")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/linegrep")
	v.SetEnvPrefix("LINEGREP")
	v.AutomaticEnv()

	v.SetDefault("color", cfg.Color)
	v.SetDefault("line_numbers", cfg.LineNumbers)
	v.SetDefault("hidden", cfg.Hidden)
	v.SetDefault("max_depth", cfg.MaxDepth)
	v.SetDefault("log_level", cfg.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that have a closed set of values.
func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid max depth %d", c.MaxDepth)
	}
	return nil
}
