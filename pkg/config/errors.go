package config

import "errors"

// Sentinel errors for configuration validation
var (
	// Execution time errors
	ErrInvalidUpdateTime        = errors.New("invalid max update time: must be non-negative")
	ErrInvalidNodeUpdateTime    = errors.New("invalid max node update time: must be non-negative")
	ErrInvalidMaxConcurrentJobs = errors.New("invalid max concurrent jobs: must be non-negative")

	// Cache configuration errors
	ErrInvalidCacheTTL        = errors.New("invalid cache TTL: must be non-negative")
	ErrInvalidMaxCacheEntries = errors.New("invalid max cache entries: must be non-negative")

	// Resource limit errors
	ErrInvalidMaxNodes     = errors.New("invalid max nodes: must be non-negative")
	ErrInvalidMaxEdges     = errors.New("invalid max edges: must be non-negative")
	ErrInvalidStringLength = errors.New("invalid max string length: must be non-negative")

	// Retry configuration errors
	ErrInvalidMaxAttempts = errors.New("invalid max attempts: must be non-negative")
	ErrInvalidBackoff     = errors.New("invalid backoff duration: must be non-negative")

	// File loading errors
	ErrConfigFileNotFound = errors.New("configuration file not found")
	ErrConfigParseFailed  = errors.New("failed to parse configuration file")
)
