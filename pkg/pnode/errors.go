package pnode

import (
	"errors"
	"fmt"

	"github.com/arjunv/flowgraph/pkg/id"
)

// ErrUnknownPort is returned by Input/Output, InputByID/OutputByID and
// SetInputID/SetOutputID when no port matches.
var ErrUnknownPort = errors.New("pnode: unknown port")

// ErrDuplicatePortName is returned by RegisterInput/RegisterOutput
// when name is already taken on the input or output side.
var ErrDuplicatePortName = errors.New("pnode: duplicate port name")

// ErrComputeFailure wraps whatever error a node's compute action
// raised. The original cause is wrapped too: use errors.Is/errors.As
// to test for it.
var ErrComputeFailure = errors.New("pnode: compute failed")

func unknownPortName(name string) error {
	return fmt.Errorf("%w: name %q", ErrUnknownPort, name)
}

func unknownPortID(portID id.ID) error {
	return fmt.Errorf("%w: id %s", ErrUnknownPort, portID)
}

func duplicatePortName(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicatePortName, name)
}

func computeFailure(nodeID id.ID, cause error) error {
	return fmt.Errorf("%w: node %s: %w", ErrComputeFailure, nodeID, cause)
}
