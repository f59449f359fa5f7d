// Package logging provides structured logging for graph and node updates.
//
// It wraps log/slog with chained context helpers so a caller can attach
// graph_id, node_id, and node_tag to a logger once and pass the result
// down the call stack instead of threading fields through every log
// call.
//
// # Basic Usage
//
//	logger := logging.New(logging.DefaultConfig())
//
//	log := logger.WithGraphID(g.ID().String())
//	log.Info("update started")
//
//	log.WithNodeID(n.ID().String()).
//		WithNodeTag(tag).
//		Info("node updated")
//
// # Output Formats
//
// JSON (default):
//
//	{"time":"2024-01-15T10:30:00Z","level":"INFO","msg":"update started","graph_id":"g-123"}
//
// Pretty text (Config.Pretty = true) is better suited to local development.
package logging
