package graph

import (
	"errors"
	"fmt"

	"github.com/arjunv/flowgraph/pkg/id"
)

// ErrDuplicateNode is returned by InsertNode when a node with the
// same UUID is already present.
var ErrDuplicateNode = errors.New("graph: duplicate node")

// ErrUnknownNode identifies a node UUID that is not present in the
// graph. RemoveNode does not return it (an absent UUID is a no-op
// there), and Deserialize reports a missing source output with
// ErrDanglingSource instead.
var ErrUnknownNode = errors.New("graph: unknown node")

// ErrCycleDetected is returned by topological ordering (and therefore
// Update) when the node dependency graph is not acyclic.
var ErrCycleDetected = errors.New("graph: cycle detected")

// ErrDanglingSource is returned during deserialization when an input
// record names a source output UUID that does not exist in the
// document.
var ErrDanglingSource = errors.New("graph: dangling source")

// ErrMalformedDocument is returned by ValidateDocument, and by
// UnmarshalDocument before it ever decodes JSON, when a document
// fails its schema check.
var ErrMalformedDocument = errors.New("graph: malformed document")

func duplicateNode(nodeID id.ID) error {
	return fmt.Errorf("%w: %s", ErrDuplicateNode, nodeID)
}

func unknownNode(nodeID id.ID) error {
	return fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
}

func danglingSource(sourceID id.ID) error {
	return fmt.Errorf("%w: %s", ErrDanglingSource, sourceID)
}

func malformedDocument(cause error) error {
	return fmt.Errorf("%w: %v", ErrMalformedDocument, cause)
}
