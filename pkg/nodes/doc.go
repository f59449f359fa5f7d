// Package nodes provides a small set of concrete pnode.Node variants
// used as fixtures and demonstration material: typed sources and
// sinks, arithmetic, an always-failing node for exercising error
// propagation, an expr-lang/expr powered expression evaluator, and a
// golang.org/x/text/cases based text transform.
//
// None of this package is imported by id, meta, port, pnode, registry,
// or graph; the core has zero dependency on any concrete node variant.
package nodes
