// Package graph provides the node container: insertion/removal,
// topological scheduling, and document (de)serialization with an
// optional per-node cache directory.
//
// A Graph is the sole owner of its Nodes (spec design note 9);
// external holders keep a UUID and look the node up through the
// Graph rather than holding a live reference.
package graph
