package nodes

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/arjunv/flowgraph/pkg/meta"
	"github.com/arjunv/flowgraph/pkg/pnode"
	"github.com/arjunv/flowgraph/pkg/port"
)

// Expression evaluates a user-supplied expr-lang/expr formula against
// two named float64 input ports ("x", "y") and publishes the result
// on a single float64 output port ("result"). The formula is private
// state, persisted in the node's data subtree, compiled lazily and
// cached on first Update after a change.
type Expression struct {
	*pnode.Base
	x, y   *port.In[float64]
	result *port.Out[float64]

	formula string
	program *vm.Program
}

// NewExpression constructs an Expression with the given formula, for
// example "x + y * 2".
func NewExpression(formula string) *Expression {
	n := &Expression{
		Base:    pnode.NewBase(),
		x:       port.NewInput[float64](),
		y:       port.NewInput[float64](),
		result:  port.NewOutput[float64](),
		formula: formula,
	}
	_ = n.RegisterInput("x", n.x)
	_ = n.RegisterInput("y", n.y)
	_ = n.RegisterOutput("result", n.result)
	n.SetCompute(n.compute)
	return n
}

func (n *Expression) compute() error {
	if n.program == nil {
		env := map[string]interface{}{"x": float64(0), "y": float64(0)}
		program, err := expr.Compile(n.formula, expr.Env(env), expr.AsFloat64())
		if err != nil {
			return fmt.Errorf("nodes: compile expression %q: %w", n.formula, err)
		}
		n.program = program
	}

	env := map[string]interface{}{"x": n.x.Value(), "y": n.y.Value()}
	out, err := expr.Run(n.program, env)
	if err != nil {
		return fmt.Errorf("nodes: evaluate expression %q: %w", n.formula, err)
	}
	value, ok := out.(float64)
	if !ok {
		return fmt.Errorf("nodes: expression %q did not produce a float64, got %T", n.formula, out)
	}
	n.result.Set(value)
	return nil
}

func (n *Expression) SerializePrivate(useCache bool, cacheDir string) (meta.Tree, error) {
	return meta.New().Set("formula", n.formula), nil
}

func (n *Expression) DeserializePrivate(data meta.Tree, cacheDir string) error {
	if formula := data.String("formula"); formula != "" {
		n.formula = formula
		n.program = nil
	}
	return nil
}
