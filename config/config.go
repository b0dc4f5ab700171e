// Package config defines engine configuration structures, loading hooks and
// the repository mapping registry.
//
// Conventions:
// - Provide New(...) initializers that build values with defaults.
// - External errors must be wrapped via this package's sentinel kinds.
// - Configuration is validated eagerly; nothing fails mid-batch.
package config

import "runtime"

// Config contains engine configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// WorkerCount bounds the batch runner's worker pool.
	WorkerCount int `koanf:"worker_count"`

	// MappingsPath points at a YAML registry of per-repository signal
	// mappings. Empty means only the default flat-key mapping is known.
	MappingsPath string `koanf:"mappings_path"`

	// DefaultRepository names the registry mapping used when the caller
	// does not name one. Empty selects the flat-key convention.
	DefaultRepository string `koanf:"default_repository"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		WorkerCount: runtime.NumCPU(),
	}
}
