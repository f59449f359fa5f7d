// Package id provides the stable identity type used for nodes and ports.
//
// An ID is a thin wrapper over github.com/google/uuid: the package does
// not reimplement UUID generation or parsing, it only adds the
// canonical-form parse error and the zero-value checks the rest of the
// graph relies on.
package id
