// Package config provides configuration management for the flowgraph
// library.
//
// # Overview
//
// The config package centralizes update limits, cache settings, and
// resource limits a host process may want to apply around Graph and
// Node operations. The library itself never reads a package-level
// Config; callers thread one through their own wiring.
//
// # Basic Usage
//
//	cfg := config.Default()
//	if err := cfg.Validate(); err != nil {
//		// handle invalid configuration
//	}
//
// # Loading from YAML
//
//	cfg, err := config.LoadYAML("flowgraph.yaml")
//
// # Thread Safety
//
// Config values are plain data; Clone returns an independent copy for
// callers that mutate a loaded configuration per request.
package config
