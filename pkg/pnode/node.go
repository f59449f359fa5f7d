package pnode

import (
	"github.com/arjunv/flowgraph/pkg/id"
	"github.com/arjunv/flowgraph/pkg/meta"
	"github.com/arjunv/flowgraph/pkg/port"
)

// Node is the capability set every concrete node variant exposes to
// a Graph: port registration and lookup, a compute action, the local
// update step, the status state machine, and the private-state
// serialization hooks (spec 4.E, 9).
type Node interface {
	ID() id.ID
	SetID(id.ID)

	RegisterInput(name string, in port.Input) error
	RegisterOutput(name string, out port.Output) error
	Input(name string) (port.Input, error)
	Output(name string) (port.Output, error)
	InputByID(portID id.ID) (port.Input, error)
	OutputByID(portID id.ID) (port.Output, error)
	InputNames() []string
	OutputNames() []string

	// SetInputID/SetOutputID overwrite the identity of an
	// already-registered port, used only when restoring a
	// previously persisted UUID during deserialization.
	SetInputID(name string, newID id.ID) error
	SetOutputID(name string, newID id.ID) error

	SetCompute(fn func() error)

	// Update is the local step of the scheduling protocol (spec
	// 4.E): pull inputs, short-circuit on an unready upstream or on
	// no change, else mark outputs Waiting, compute, and publish.
	Update() error
	Status() Status
	Err() error

	// SerializePrivate returns this node's private state as an
	// opaque tree. useCache indicates cacheDir was created by the
	// caller and may be written to. The default implementation
	// returns nil, nil (no private state).
	SerializePrivate(useCache bool, cacheDir string) (meta.Tree, error)
	// DeserializePrivate restores private state previously produced
	// by SerializePrivate. The default implementation ignores data.
	DeserializePrivate(data meta.Tree, cacheDir string) error
}

// Base implements Node's bookkeeping: port tables, the status state
// machine, and the update algorithm. Concrete node variants embed
// Base, register ports and a compute action at construction, and
// shadow SerializePrivate/DeserializePrivate when they carry private
// state beyond their ports.
type Base struct {
	id id.ID

	inputs     map[string]port.Input
	inputOrder []string
	inputByID  map[id.ID]string

	outputs     map[string]port.Output
	outputOrder []string
	outputByID  map[id.ID]string

	compute func() error

	ranOnce bool
	sticky  Status // StatusIdle means "no sticky state"
	err     error
}

// NewBase constructs an empty Base with a fresh identity. Concrete
// node constructors call this, then RegisterInput/RegisterOutput for
// each of their ports, then SetCompute.
func NewBase() *Base {
	return &Base{
		id:         id.New(),
		inputs:     make(map[string]port.Input),
		inputByID:  make(map[id.ID]string),
		outputs:    make(map[string]port.Output),
		outputByID: make(map[id.ID]string),
	}
}

func (b *Base) ID() id.ID     { return b.id }
func (b *Base) SetID(i id.ID) { b.id = i }

// RegisterInput adds in under name, setting in's parent back-reference
// to this node. It fails with ErrDuplicatePortName if name is taken.
func (b *Base) RegisterInput(name string, in port.Input) error {
	if _, exists := b.inputs[name]; exists {
		return duplicatePortName(name)
	}
	in.SetParentID(b.id)
	b.inputs[name] = in
	b.inputOrder = append(b.inputOrder, name)
	b.inputByID[in.ID()] = name
	return nil
}

// RegisterOutput adds out under name, setting out's parent
// back-reference to this node. It fails with ErrDuplicatePortName if
// name is taken.
func (b *Base) RegisterOutput(name string, out port.Output) error {
	if _, exists := b.outputs[name]; exists {
		return duplicatePortName(name)
	}
	out.SetParentID(b.id)
	b.outputs[name] = out
	b.outputOrder = append(b.outputOrder, name)
	b.outputByID[out.ID()] = name
	return nil
}

func (b *Base) Input(name string) (port.Input, error) {
	in, ok := b.inputs[name]
	if !ok {
		return nil, unknownPortName(name)
	}
	return in, nil
}

func (b *Base) Output(name string) (port.Output, error) {
	out, ok := b.outputs[name]
	if !ok {
		return nil, unknownPortName(name)
	}
	return out, nil
}

func (b *Base) InputByID(portID id.ID) (port.Input, error) {
	name, ok := b.inputByID[portID]
	if !ok {
		return nil, unknownPortID(portID)
	}
	return b.inputs[name], nil
}

func (b *Base) OutputByID(portID id.ID) (port.Output, error) {
	name, ok := b.outputByID[portID]
	if !ok {
		return nil, unknownPortID(portID)
	}
	return b.outputs[name], nil
}

// SetInputID overwrites the port's own identity and re-keys the
// by-ID lookup table so it resolves under the new UUID.
func (b *Base) SetInputID(name string, newID id.ID) error {
	in, ok := b.inputs[name]
	if !ok {
		return unknownPortName(name)
	}
	delete(b.inputByID, in.ID())
	in.SetID(newID)
	b.inputByID[newID] = name
	return nil
}

// SetOutputID overwrites the port's own identity and re-keys the
// by-ID lookup table so it resolves under the new UUID.
func (b *Base) SetOutputID(name string, newID id.ID) error {
	out, ok := b.outputs[name]
	if !ok {
		return unknownPortName(name)
	}
	delete(b.outputByID, out.ID())
	out.SetID(newID)
	b.outputByID[newID] = name
	return nil
}

// InputNames returns input port names in registration order.
func (b *Base) InputNames() []string {
	return append([]string(nil), b.inputOrder...)
}

// OutputNames returns output port names in registration order.
func (b *Base) OutputNames() []string {
	return append([]string(nil), b.outputOrder...)
}

// SetCompute assigns the action Update runs once all inputs are
// ready. A nil compute action is valid: the node merely propagates
// port status with no effect of its own.
func (b *Base) SetCompute(fn func() error) {
	b.compute = fn
}

// Status computes the node's display state (spec 4.E): sticky Error
// or Updating dominates, then Waiting if any input's source is not
// yet produced, then Ready if any input has unconsumed new data, else
// Idle.
func (b *Base) Status() Status {
	if b.sticky == StatusError || b.sticky == StatusUpdating {
		return b.sticky
	}
	waiting, ready := false, false
	for _, name := range b.inputOrder {
		switch b.inputs[name].Status() {
		case port.StatusWaiting:
			waiting = true
		case port.StatusQueued:
			ready = true
		}
	}
	switch {
	case waiting:
		return StatusWaiting
	case ready:
		return StatusReady
	default:
		return StatusIdle
	}
}

// Err returns the error captured by the most recent failing compute,
// or nil if the node is not in StatusError.
func (b *Base) Err() error {
	if b.sticky != StatusError {
		return nil
	}
	return b.err
}

// Update runs the local scheduling step (spec 4.E, 4.H):
//  1. Pull every input; remember whether any yielded a new value.
//  2. If any input's source is still Waiting, this node is Waiting
//     too; stop without computing.
//  3. If nothing changed and this is not the first run, this is a
//     no-op: stop without touching outputs (the no-work optimization).
//  4. Otherwise mark every output Waiting, run the compute action,
//     and either capture the error (sticky Error, outputs stay
//     Waiting and are pushed as such) or publish (outputs Idle,
//     pushed as Queued).
func (b *Base) Update() error {
	changed := false
	anyWaiting := false
	for _, name := range b.inputOrder {
		in := b.inputs[name]
		if in.Update() {
			changed = true
		}
		if in.Status() == port.StatusWaiting {
			anyWaiting = true
		}
	}

	if anyWaiting {
		return nil
	}
	if !changed && b.ranOnce {
		return nil
	}

	for _, name := range b.outputOrder {
		b.outputs[name].MarkWaiting()
	}

	if b.compute != nil {
		b.sticky = StatusUpdating
		if err := b.compute(); err != nil {
			b.sticky = StatusError
			b.err = err
			for _, name := range b.outputOrder {
				b.outputs[name].Update()
			}
			return computeFailure(b.id, err)
		}
	}

	b.ranOnce = true
	b.sticky = StatusIdle
	for _, name := range b.outputOrder {
		out := b.outputs[name]
		out.MarkIdle()
		out.Update()
	}
	return nil
}

// SerializePrivate is the default no-private-state implementation.
// Concrete node variants with private data shadow this method.
func (b *Base) SerializePrivate(useCache bool, cacheDir string) (meta.Tree, error) {
	return nil, nil
}

// DeserializePrivate is the default no-private-state implementation.
func (b *Base) DeserializePrivate(data meta.Tree, cacheDir string) error {
	return nil
}
