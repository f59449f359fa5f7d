// Command flowgraphdemo assembles a small data-flow graph, runs it,
// then round-trips it through the persisted document format.
package main

import (
	"fmt"
	"os"

	"github.com/arjunv/flowgraph/pkg/graph"
	"github.com/arjunv/flowgraph/pkg/nodes"
	"github.com/arjunv/flowgraph/pkg/port"
	"github.com/arjunv/flowgraph/pkg/registry"
)

func main() {
	reg := registry.New()
	if err := nodes.Register(reg); err != nil {
		fatal("register node types", err)
	}

	g := graph.New()

	a := nodes.NewIntSource(3)
	b := nodes.NewIntSource(4)
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

	if err := g.Update(); err != nil {
		fatal("update graph", err)
	}
	fmt.Printf("sink value after first update: %d\n", sink.Value())

	cacheRoot, err := os.MkdirTemp("", "flowgraphdemo-cache")
	if err != nil {
		fatal("create cache dir", err)
	}
	defer os.RemoveAll(cacheRoot)

	doc, err := graph.Serialize(g, reg, true, cacheRoot)
	if err != nil {
		fatal("serialize graph", err)
	}

	data, err := graph.MarshalDocument(doc)
	if err != nil {
		fatal("marshal document", err)
	}
	fmt.Printf("persisted document: %d nodes, %d bytes\n", len(doc.Nodes), len(data))

	validatedDoc, err := graph.UnmarshalDocument(data)
	if err != nil {
		fatal("validate and unmarshal document", err)
	}

	restored := graph.New()
	if err := graph.Deserialize(restored, validatedDoc, reg, cacheRoot); err != nil {
		fatal("deserialize graph", err)
	}

	if err := restored.Update(); err != nil {
		fatal("update restored graph", err)
	}

	for _, n := range restored.Nodes() {
		if s, ok := n.(*nodes.IntSink); ok {
			fmt.Printf("restored sink value: %d\n", s.Value())
		}
	}
}

func mustConnect(out port.Output, in port.Input) {
	if err := port.Connect(out, in); err != nil {
		fatal("connect ports", err)
	}
}

func fatal(step string, err error) {
	fmt.Fprintf(os.Stderr, "flowgraphdemo: %s: %v\n", step, err)
	os.Exit(1)
}
