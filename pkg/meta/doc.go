// Package meta provides the in-memory hierarchical document used to
// carry a node's private state across serialization.
//
// A Tree is deliberately thin: it is a map[string]any with JSON
// (de)serialization and a handful of typed accessors. Nodes are free
// to stash nested trees, slices, or scalars under their own keys;
// keys the node does not recognize on deserialize are preserved
// verbatim so round-tripping a document never silently drops data.
package meta
