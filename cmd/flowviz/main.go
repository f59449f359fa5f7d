// Command flowviz renders a persisted graph document as a Graphviz
// DOT file. It is a reference exporter: it demonstrates how an
// external collaborator walks a graph.Inspector and layers cosmetic
// styling without living inside the core library.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/arjunv/flowgraph/pkg/graph"
	"github.com/arjunv/flowgraph/pkg/id"
	"github.com/arjunv/flowgraph/pkg/nodes"
	"github.com/arjunv/flowgraph/pkg/pnode"
	"github.com/arjunv/flowgraph/pkg/port"
	"github.com/arjunv/flowgraph/pkg/registry"
)

// style holds cosmetic DOT node attributes. Empty fields are left
// unset so a narrower style layer never blanks out a broader one.
type style struct {
	Shape string
	Color string
}

func (s style) merge(over style) style {
	merged := s
	if over.Shape != "" {
		merged.Shape = over.Shape
	}
	if over.Color != "" {
		merged.Color = over.Color
	}
	return merged
}

func (s style) attrs() string {
	var parts []string
	if s.Shape != "" {
		parts = append(parts, fmt.Sprintf("shape=%s", s.Shape))
	}
	if s.Color != "" {
		parts = append(parts, fmt.Sprintf("color=%s", s.Color))
	}
	return strings.Join(parts, ", ")
}

// styleSheet resolves a node's final style with precedence
// default < class (by tag) < instance (by UUID).
type styleSheet struct {
	defaultStyle style
	byTag        map[string]style
	byUUID       map[string]style
}

func (ss styleSheet) resolve(tag, uuid string) style {
	s := ss.defaultStyle
	if classStyle, ok := ss.byTag[tag]; ok {
		s = s.merge(classStyle)
	}
	if instanceStyle, ok := ss.byUUID[uuid]; ok {
		s = s.merge(instanceStyle)
	}
	return s
}

func main() {
	docPath := flag.String("doc", "", "path to a persisted graph document (JSON)")
	flag.Parse()

	reg := registry.New()
	if err := nodes.Register(reg); err != nil {
		fatal("register node types", err)
	}

	g := graph.New()

	if *docPath != "" {
		data, err := os.ReadFile(*docPath)
		if err != nil {
			fatal("read document", err)
		}
		var doc graph.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			fatal("parse document", err)
		}
		if err := graph.Deserialize(g, &doc, reg, ""); err != nil {
			fatal("deserialize document", err)
		}
	} else {
		g = sampleGraph()
	}

	tagOf := func(n interface{ ID() id.ID }) (string, error) {
		node, ok := n.(pnode.Node)
		if !ok {
			return "", fmt.Errorf("flowviz: %T does not implement pnode.Node", n)
		}
		return reg.TagOf(reflect.TypeOf(node))
	}

	inspector := graph.NewInspector(g, tagOf)
	ss := styleSheet{
		defaultStyle: style{Shape: "box", Color: "black"},
		byTag: map[string]style{
			"flowgraph.int_source":   {Color: "forestgreen"},
			"flowgraph.float_source": {Color: "forestgreen"},
			"flowgraph.int_sink":     {Shape: "doublecircle", Color: "steelblue"},
			"flowgraph.failer":       {Color: "crimson"},
		},
		byUUID: map[string]style{},
	}

	dot, err := render(inspector, ss)
	if err != nil {
		fatal("render graph", err)
	}
	fmt.Println(dot)
}

func render(inspector graph.Inspector, ss styleSheet) (string, error) {
	views, err := inspector.NodeViews()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("digraph flowgraph {\n")
	for _, v := range views {
		st := ss.resolve(v.Tag, v.ID.String())
		label := fmt.Sprintf("%s\\n%s", v.Tag, v.ID.String()[:8])
		fmt.Fprintf(&b, "  %q [label=%q, %s];\n", v.ID.String(), label, st.attrs())
	}
	for _, e := range inspector.Edges() {
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", e.FromNode.String(), e.ToNode.String(), e.FromPort+"->"+e.ToPort)
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// sampleGraph builds a tiny graph when no document path is given, so
// flowviz has something to render out of the box.
func sampleGraph() *graph.Graph {
	g := graph.New()
	a := nodes.NewIntSource(1)
	b := nodes.NewIntSource(2)
	adder := nodes.NewAdder()
	sink := nodes.NewIntSink()
	if err := g.InsertNodes(a, b, adder, sink); err != nil {
		fatal("insert nodes", err)
	}

	aOut, _ := a.Output("out")
	bOut, _ := b.Output("out")
	adderA, _ := adder.Input("a")
	adderB, _ := adder.Input("b")
	adderSum, _ := adder.Output("sum")
	sinkIn, _ := sink.Input("in")

	mustConnect(aOut, adderA)
	mustConnect(bOut, adderB)
	mustConnect(adderSum, sinkIn)
	return g
}

func mustConnect(out port.Output, in port.Input) {
	if err := port.Connect(out, in); err != nil {
		fatal("connect ports", err)
	}
}

func fatal(step string, err error) {
	fmt.Fprintf(os.Stderr, "flowviz: %s: %v\n", step, err)
	os.Exit(1)
}
