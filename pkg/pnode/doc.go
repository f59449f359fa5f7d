// Package pnode implements the Node capability set: named, typed
// ports, a compute action, the node state machine, and the local
// pull/compute/publish update step.
//
// Base implements the bookkeeping every concrete node variant shares
// (port registration, status derivation, the update algorithm).
// Concrete node variants embed Base, register their ports and a
// compute action in their constructor, and override SerializePrivate
// / DeserializePrivate when they carry private state.
package pnode
