package port

import (
	"reflect"

	"github.com/arjunv/flowgraph/pkg/id"
)

// Port is the capability shared by every Input and Output, regardless
// of their value type.
type Port interface {
	ID() id.ID
	// SetID overwrites this port's identity. Used only by
	// deserialization to restore a previously persisted UUID.
	SetID(id.ID)
	// ParentID is the owning Node's identity. It is a lookup-only
	// back-reference, never an ownership edge (spec 4.D, 9).
	ParentID() id.ID
	SetParentID(id.ID)
	Status() Status
	ValueType() reflect.Type
}

// Output is the type-erased view of an Output[T] used wherever ports
// of mixed value types must be stored or connected generically.
type Output interface {
	Port
	// Sinks returns a snapshot of the connected Inputs.
	Sinks() []Input
	// Update pushes the output's current status to every sink,
	// the push half of the scheduling policy (spec 4.D, 4.H).
	Update()
	// MarkWaiting expresses "downstream data is not yet valid";
	// called by the owning Node before compute runs (spec 4.E step 2).
	MarkWaiting()
	// MarkIdle is the step-4 fallback for outputs compute did not
	// touch this round: still considered fresh enough to publish.
	MarkIdle()

	addSink(Input)
	removeSink(Input)
}

// Input is the type-erased view of an Input[T].
type Input interface {
	Port
	Source() Output
	// Update pulls a fresh value from the source Output if it has
	// changed since this Input last read it, returning whether the
	// value was refreshed (spec 4.D, 4.H).
	Update() bool
	// Detach clears this input's source, and the source's
	// back-reference to it, so neither side refers to a dead peer
	// (spec 3, 9).
	Detach()

	setSource(Output)
	clearSource()
	notifyWaiting()
	notifyQueued()
}

// Connect establishes a directed link from o to i. It fails with
// ErrTypeMismatch if the two ports carry different value types, or
// ErrAlreadyConnected if i already has a source. On failure neither
// side is mutated.
func Connect(o Output, i Input) error {
	if o.ValueType() != i.ValueType() {
		return typeMismatch(o, i)
	}
	if i.Source() != nil {
		return ErrAlreadyConnected
	}
	o.addSink(i)
	i.setSource(o)
	return nil
}

// Disconnect removes the link between o and i. It is idempotent: a
// call where i is not currently sourced from o is a no-op.
func Disconnect(o Output, i Input) {
	if i == nil || i.Source() == nil {
		return
	}
	if o == nil || i.Source() != o {
		return
	}
	o.removeSink(i)
	i.clearSource()
}

// Out is a typed output port holding a value of type T plus the list
// of Inputs it feeds. It implements Output.
type Out[T any] struct {
	id       id.ID
	parentID id.ID
	status   Status
	value    T
	version  uint64
	sinks    []Input
}

// NewOutput constructs a fresh Output[T] in its initial Waiting state
// (no value produced yet).
func NewOutput[T any]() *Out[T] {
	return &Out[T]{id: id.New(), status: StatusWaiting}
}

func (o *Out[T]) ID() id.ID             { return o.id }
func (o *Out[T]) SetID(i id.ID)         { o.id = i }
func (o *Out[T]) ParentID() id.ID       { return o.parentID }
func (o *Out[T]) SetParentID(p id.ID)   { o.parentID = p }
func (o *Out[T]) Status() Status        { return o.status }
func (o *Out[T]) ValueType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Sinks returns a snapshot of the connected Inputs.
func (o *Out[T]) Sinks() []Input {
	return append([]Input(nil), o.sinks...)
}

func (o *Out[T]) addSink(i Input) {
	o.sinks = append(o.sinks, i)
}

func (o *Out[T]) removeSink(i Input) {
	for idx, s := range o.sinks {
		if s == i {
			o.sinks = append(o.sinks[:idx], o.sinks[idx+1:]...)
			return
		}
	}
}

// Set assigns a new value. It transitions Waiting -> Idle (or stays
// Idle) and marks the output changed, per spec 4.D.
func (o *Out[T]) Set(v T) {
	o.value = v
	o.version++
	o.status = StatusIdle
}

// Value returns the output's current value. It is only meaningful
// once Status() is not Waiting.
func (o *Out[T]) Value() T {
	return o.value
}

// MarkWaiting expresses "downstream data is not yet valid"; called by
// the owning Node before compute runs (spec 4.E step 2).
func (o *Out[T]) MarkWaiting() {
	o.status = StatusWaiting
}

// MarkIdle is the step-4 fallback for outputs compute did not touch
// this round: still considered fresh enough to publish.
func (o *Out[T]) MarkIdle() {
	if o.status != StatusError {
		o.status = StatusIdle
	}
}

// Update notifies every connected Input of this output's current
// status so the Input knows whether a pull would yield new data.
func (o *Out[T]) Update() {
	for _, s := range o.sinks {
		if o.status == StatusWaiting {
			s.notifyWaiting()
		} else {
			s.notifyQueued()
		}
	}
}

// In is a typed input port holding at most one upstream Output
// reference. It implements Input.
type In[T any] struct {
	id       id.ID
	parentID id.ID
	status   Status
	value    T
	source   Output
	lastSeen uint64
}

// NewInput constructs a fresh, unconnected Input[T] in its initial
// Idle state.
func NewInput[T any]() *In[T] {
	return &In[T]{id: id.New(), status: StatusIdle}
}

func (in *In[T]) ID() id.ID           { return in.id }
func (in *In[T]) SetID(i id.ID)       { in.id = i }
func (in *In[T]) ParentID() id.ID     { return in.parentID }
func (in *In[T]) SetParentID(p id.ID) { in.parentID = p }
func (in *In[T]) Status() Status      { return in.status }
func (in *In[T]) ValueType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (in *In[T]) Source() Output { return in.source }

func (in *In[T]) setSource(o Output) { in.source = o }

func (in *In[T]) clearSource() {
	in.source = nil
	in.lastSeen = 0
	in.status = StatusIdle
}

func (in *In[T]) notifyWaiting() { in.status = StatusWaiting }
func (in *In[T]) notifyQueued()  { in.status = StatusQueued }

// Value returns the last value pulled from the source Output.
func (in *In[T]) Value() T { return in.value }

// Detach clears the connection from both sides, matching spec 3's
// "on destruction, an Input must detach itself" obligation.
func (in *In[T]) Detach() {
	Disconnect(in.source, in)
}

// Update is the lazy-pull half of the scheduling policy: it refreshes
// in's value from its source Output if and only if the source changed
// since in last read it, returning whether a refresh happened.
func (in *In[T]) Update() bool {
	if in.source == nil {
		return false
	}
	if in.source.Status() == StatusWaiting {
		in.status = StatusWaiting
		return false
	}
	src, ok := in.source.(*Out[T])
	if !ok {
		// Connect() type-checks by reflect.Type, so a mismatched
		// concrete type here would mean two distinct T's produced an
		// identical reflect.Type, which cannot happen for Go's
		// built-in and struct types.
		return false
	}
	if src.version > in.lastSeen {
		in.value = src.value
		in.lastSeen = src.version
		in.status = StatusIdle
		return true
	}
	in.status = StatusIdle
	return false
}
