// Package port implements the typed input/output ports that carry
// values between nodes.
//
// Output[T] and Input[T] are the only concrete port types. Connect and
// Disconnect operate on the type-erased Output/Input interfaces so a
// Node can hold heterogeneous ports in a single map, while the
// generic structs give each port compile-time value-type safety at
// the call site that builds the graph.
package port
