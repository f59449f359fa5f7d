package nodes

import (
	"errors"

	"github.com/arjunv/flowgraph/pkg/pnode"
	"github.com/arjunv/flowgraph/pkg/port"
)

// Adder has two int input ports ("a", "b") and one int output port
// ("sum"); its compute action publishes their sum.
type Adder struct {
	*pnode.Base
	a, b *port.In[int]
	sum  *port.Out[int]
}

// NewAdder constructs an unconnected Adder.
func NewAdder() *Adder {
	n := &Adder{
		Base: pnode.NewBase(),
		a:    port.NewInput[int](),
		b:    port.NewInput[int](),
		sum:  port.NewOutput[int](),
	}
	_ = n.RegisterInput("a", n.a)
	_ = n.RegisterInput("b", n.b)
	_ = n.RegisterOutput("sum", n.sum)
	n.SetCompute(func() error {
		n.sum.Set(n.a.Value() + n.b.Value())
		return nil
	})
	return n
}

// Failer has one int input ("in") and one int output ("out"); its
// compute action always fails, for exercising the error-propagation
// scenario.
type Failer struct {
	*pnode.Base
	in  *port.In[int]
	out *port.Out[int]
}

// ErrFailerTriggered is the sentinel error every Failer compute
// raises.
var ErrFailerTriggered = errors.New("nodes: failer triggered")

// NewFailer constructs an unconnected Failer.
func NewFailer() *Failer {
	n := &Failer{Base: pnode.NewBase(), in: port.NewInput[int](), out: port.NewOutput[int]()}
	_ = n.RegisterInput("in", n.in)
	_ = n.RegisterOutput("out", n.out)
	n.SetCompute(func() error {
		return ErrFailerTriggered
	})
	return n
}
