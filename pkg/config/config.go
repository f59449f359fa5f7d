package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds flowgraph library configuration.
// All configuration options are centralized here for easy management and validation.
type Config struct {
	// Execution limits
	MaxUpdateTime     time.Duration // Maximum time for a single Graph.Update call
	MaxNodeUpdateTime time.Duration // Maximum time for a single node's compute action
	MaxConcurrentJobs int           // Worker limit passed to Graph.UpdateConcurrent (0 = unlimited)

	// Cache configuration
	CacheRoot       string        // Root directory for per-node cache directories
	DefaultCacheTTL time.Duration // Advisory TTL a caller may use to decide whether to reuse a cache entry
	MaxCacheEntries int           // Maximum number of per-node cache directories to retain

	// Resource limits
	MaxNodes        int // Maximum number of nodes a Graph will accept
	MaxEdges        int // Maximum number of connections a Graph will accept
	MaxStringLength int // Maximum length of a string value carried through a meta.Tree (0 = unlimited)

	// Retry configuration, for callers that wrap node.Update with retries
	DefaultMaxAttempts int           // Default max retry attempts for a failing node
	DefaultBackoff     time.Duration // Default initial backoff delay between retries
}

// Default returns a Config with sensible, moderate default values.
func Default() *Config {
	return &Config{
		MaxUpdateTime:     5 * time.Minute,
		MaxNodeUpdateTime: 30 * time.Second,
		MaxConcurrentJobs: 0,

		CacheRoot:       ".flowgraph-cache",
		DefaultCacheTTL: 1 * time.Hour,
		MaxCacheEntries: 1000,

		MaxNodes:        1000,
		MaxEdges:        5000,
		MaxStringLength: 0,

		DefaultMaxAttempts: 3,
		DefaultBackoff:     1 * time.Second,
	}
}

// Production returns a Config with conservative limits suited to a
// long-running host process embedding the library.
func Production() *Config {
	cfg := Default()
	cfg.MaxUpdateTime = 2 * time.Minute
	cfg.MaxNodeUpdateTime = 10 * time.Second
	cfg.MaxConcurrentJobs = 8
	return cfg
}

// Testing returns a Config with tight limits suitable for fast test runs.
func Testing() *Config {
	cfg := Default()
	cfg.MaxUpdateTime = 5 * time.Second
	cfg.MaxNodeUpdateTime = 1 * time.Second
	cfg.CacheRoot = os.TempDir()
	cfg.MaxNodes = 100
	cfg.MaxEdges = 500
	return cfg
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if c.MaxUpdateTime < 0 {
		return ErrInvalidUpdateTime
	}
	if c.MaxNodeUpdateTime < 0 {
		return ErrInvalidNodeUpdateTime
	}
	if c.MaxConcurrentJobs < 0 {
		return ErrInvalidMaxConcurrentJobs
	}
	if c.DefaultCacheTTL < 0 {
		return ErrInvalidCacheTTL
	}
	if c.MaxCacheEntries < 0 {
		return ErrInvalidMaxCacheEntries
	}
	if c.MaxNodes < 0 {
		return ErrInvalidMaxNodes
	}
	if c.MaxEdges < 0 {
		return ErrInvalidMaxEdges
	}
	if c.MaxStringLength < 0 {
		return ErrInvalidStringLength
	}
	if c.DefaultMaxAttempts < 0 {
		return ErrInvalidMaxAttempts
	}
	if c.DefaultBackoff < 0 {
		return ErrInvalidBackoff
	}
	return nil
}

// Clone creates a deep copy of the configuration. Config currently
// holds no reference-typed fields, but Clone is kept so callers never
// need to care whether that stays true.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// LoadYAML reads a Config from a YAML file, starting from Default()
// so unspecified fields keep their defaults, then validates the result.
func LoadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigFileNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ErrConfigParseFailed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
