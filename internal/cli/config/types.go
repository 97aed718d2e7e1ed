// Package config provides configuration management for the ddldoc CLI.
//
// Values are layered, highest priority first: command-line flags,
// DDLDOC_* environment variables, a ddldoc.yaml config file, and defaults.
// With no config file and no environment the CLI reads ./DDL and writes
// ./result, both relative to the executable.
package config

import (
	"path/filepath"
	"time"
)

// Config holds all CLI configuration options.
type Config struct {
	Input         string        `koanf:"input"`
	OutputDir     string        `koanf:"output_dir"`
	Verbose       bool          `koanf:"verbose"`
	LogFormat     string        `koanf:"log_format"`
	OutputFormat  string        `koanf:"output"`
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// ProgramDir is the directory holding the executable. Default input and
	// output directories live beside it.
	ProgramDir string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultInputDirName  = "DDL"
	DefaultOutputDirName = "result"
	DefaultLogFormat     = "text"
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultWatchDebounce = 500 * time.Millisecond

	// EnvPrefix prefixes every environment variable the CLI reads.
	EnvPrefix = "DDLDOC_"
)

// ConfigFileNames are searched, in order, when no --config is given.
var ConfigFileNames = []string{"ddldoc.yaml", "ddldoc.yml"}

// DefaultInputDir returns the directory used when no input path is given.
func (c *Config) DefaultInputDir() string {
	return filepath.Join(c.ProgramDir, DefaultInputDirName)
}
