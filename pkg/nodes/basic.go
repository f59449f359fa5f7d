package nodes

import (
	"github.com/arjunv/flowgraph/pkg/meta"
	"github.com/arjunv/flowgraph/pkg/pnode"
	"github.com/arjunv/flowgraph/pkg/port"
)

// IntSource has a single output port "out" and publishes a constant
// int value. The value is private state persisted under the "value"
// key.
type IntSource struct {
	*pnode.Base
	out   *port.Out[int]
	value int
}

// NewIntSource constructs an IntSource producing value.
func NewIntSource(value int) *IntSource {
	n := &IntSource{Base: pnode.NewBase(), value: value, out: port.NewOutput[int]()}
	_ = n.RegisterOutput("out", n.out)
	n.SetCompute(func() error {
		n.out.Set(n.value)
		return nil
	})
	return n
}

func (n *IntSource) SerializePrivate(useCache bool, cacheDir string) (meta.Tree, error) {
	return meta.New().Set("value", n.value), nil
}

func (n *IntSource) DeserializePrivate(data meta.Tree, cacheDir string) error {
	if v, ok := data.Get("value"); ok {
		if f, ok := v.(float64); ok {
			n.value = int(f)
		}
	}
	return nil
}

// IntSink has a single input port "in" and has no compute action of
// its own; it exists to expose a pulled value for inspection (tests,
// demos) via Value.
type IntSink struct {
	*pnode.Base
	in *port.In[int]
}

// NewIntSink constructs an unconnected IntSink.
func NewIntSink() *IntSink {
	n := &IntSink{Base: pnode.NewBase(), in: port.NewInput[int]()}
	_ = n.RegisterInput("in", n.in)
	return n
}

// Value returns the last value pulled from this sink's source.
func (n *IntSink) Value() int {
	return n.in.Value()
}

// FloatSource has a single output port "out" and publishes a constant
// float64 value. Used as the scenario-2 TypeMismatch fixture when
// connected to an int-typed input.
type FloatSource struct {
	*pnode.Base
	out   *port.Out[float64]
	value float64
}

// NewFloatSource constructs a FloatSource producing value.
func NewFloatSource(value float64) *FloatSource {
	n := &FloatSource{Base: pnode.NewBase(), value: value, out: port.NewOutput[float64]()}
	_ = n.RegisterOutput("out", n.out)
	n.SetCompute(func() error {
		n.out.Set(n.value)
		return nil
	})
	return n
}

func (n *FloatSource) SerializePrivate(useCache bool, cacheDir string) (meta.Tree, error) {
	return meta.New().Set("value", n.value), nil
}

func (n *FloatSource) DeserializePrivate(data meta.Tree, cacheDir string) error {
	if v, ok := data.Get("value"); ok {
		if f, ok := v.(float64); ok {
			n.value = f
		}
	}
	return nil
}
