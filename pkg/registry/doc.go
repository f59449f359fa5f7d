// Package registry maps string tags to node constructors so a Graph
// can be deserialized without its caller knowing every concrete node
// type up front.
//
// Registration is process-wide by convention (see Default) but the
// Registry type itself holds no package-level state, so tests and
// isolated components can build their own.
package registry
