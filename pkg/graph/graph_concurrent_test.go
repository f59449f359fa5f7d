package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arjunv/flowgraph/pkg/pnode"
	"github.com/arjunv/flowgraph/pkg/port"
)

// adderIntNode has two int inputs and one int output; it's the
// minimal fan-in fixture UpdateConcurrent's wave barrier needs (a
// single source or sink has nothing to fan in from).
type adderIntNode struct {
	*pnode.Base
}

func newAdderIntNode() *adderIntNode {
	n := &adderIntNode{Base: pnode.NewBase()}
	a := port.NewInput[int]()
	b := port.NewInput[int]()
	out := port.NewOutput[int]()
	_ = n.RegisterInput("a", a)
	_ = n.RegisterInput("b", b)
	_ = n.RegisterOutput("sum", out)
	n.SetCompute(func() error {
		out.Set(a.Value() + b.Value())
		return nil
	})
	return n
}

// rendezvousSourceNode sends on own in its compute, then blocks until
// a sibling sends on partner before producing value. Two of these
// wired into the same wave can only both finish if UpdateConcurrent
// actually runs them concurrently: under serial execution the first
// one scheduled would block forever waiting for a send that the
// second, never started, can never make.
type rendezvousSourceNode struct {
	*pnode.Base
	value   int
	own     chan struct{}
	partner chan struct{}
}

func newRendezvousSourceNode(value int, own, partner chan struct{}) *rendezvousSourceNode {
	n := &rendezvousSourceNode{Base: pnode.NewBase(), value: value, own: own, partner: partner}
	out := port.NewOutput[int]()
	_ = n.RegisterOutput("out", out)
	n.SetCompute(func() error {
		n.own <- struct{}{}
		<-n.partner
		out.Set(n.value)
		return nil
	})
	return n
}

func TestUpdateConcurrentRunsSameWaveNodesConcurrently(t *testing.T) {
	chA := make(chan struct{}, 1)
	chB := make(chan struct{}, 1)

	a := newRendezvousSourceNode(3, chA, chB)
	b := newRendezvousSourceNode(4, chB, chA)
	sum := newAdderIntNode()

	g := New()
	if err := g.InsertNodes(a, b, sum); err != nil {
		t.Fatalf("InsertNodes: %v", err)
	}
	aOut, _ := a.Output("out")
	bOut, _ := b.Output("out")
	sumA, _ := sum.Input("a")
	sumB, _ := sum.Input("b")
	if err := port.Connect(aOut, sumA); err != nil {
		t.Fatalf("Connect a->sum: %v", err)
	}
	if err := port.Connect(bOut, sumB); err != nil {
		t.Fatalf("Connect b->sum: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- g.UpdateConcurrent(context.Background(), 0)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("UpdateConcurrent: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("UpdateConcurrent did not return within 2s; same-wave nodes appear to run serially")
	}

	sumOut, _ := sum.Output("sum")
	if got := sumOut.(*port.Out[int]).Value(); got != 7 {
		t.Fatalf("sum output = %d, want 7", got)
	}
}

func TestUpdateConcurrentWaveBarrierFanIn(t *testing.T) {
	g := New()
	a := newIntSourceNode(10)
	b := newIntSourceNode(32)
	sum := newAdderIntNode()
	sink := newIntSinkNode()
	if err := g.InsertNodes(a, b, sum, sink); err != nil {
		t.Fatalf("InsertNodes: %v", err)
	}

	aOut, _ := a.Output("out")
	bOut, _ := b.Output("out")
	sumA, _ := sum.Input("a")
	sumB, _ := sum.Input("b")
	sumOut, _ := sum.Output("sum")
	sinkIn, _ := sink.Input("in")
	if err := port.Connect(aOut, sumA); err != nil {
		t.Fatalf("Connect a->sum: %v", err)
	}
	if err := port.Connect(bOut, sumB); err != nil {
		t.Fatalf("Connect b->sum: %v", err)
	}
	if err := port.Connect(sumOut, sinkIn); err != nil {
		t.Fatalf("Connect sum->sink: %v", err)
	}

	if err := g.UpdateConcurrent(context.Background(), 0); err != nil {
		t.Fatalf("UpdateConcurrent: %v", err)
	}
	if got := sinkValue(t, sink); got != 42 {
		t.Fatalf("sink value = %d, want 42 (wave barrier must wait for both fan-in sources)", got)
	}
}

func TestUpdateConcurrentRespectsMaxWorkers(t *testing.T) {
	g := New()
	a := newIntSourceNode(1)
	b := newIntSourceNode(2)
	sum := newAdderIntNode()
	sink := newIntSinkNode()
	if err := g.InsertNodes(a, b, sum, sink); err != nil {
		t.Fatalf("InsertNodes: %v", err)
	}
	aOut, _ := a.Output("out")
	bOut, _ := b.Output("out")
	sumA, _ := sum.Input("a")
	sumB, _ := sum.Input("b")
	sumOut, _ := sum.Output("sum")
	sinkIn, _ := sink.Input("in")
	if err := port.Connect(aOut, sumA); err != nil {
		t.Fatalf("Connect a->sum: %v", err)
	}
	if err := port.Connect(bOut, sumB); err != nil {
		t.Fatalf("Connect b->sum: %v", err)
	}
	if err := port.Connect(sumOut, sinkIn); err != nil {
		t.Fatalf("Connect sum->sink: %v", err)
	}

	if err := g.UpdateConcurrent(context.Background(), 1); err != nil {
		t.Fatalf("UpdateConcurrent(maxWorkers=1): %v", err)
	}
	if got := sinkValue(t, sink); got != 3 {
		t.Fatalf("sink value = %d, want 3", got)
	}
}

func TestUpdateConcurrentFirstErrorWins(t *testing.T) {
	g := New()
	a := newIntSourceNode(1)
	bad := newFailerNode()
	badSink := newIntSinkNode()
	good := newIntSourceNode(9)
	goodSink := newIntSinkNode()
	if err := g.InsertNodes(a, bad, badSink, good, goodSink); err != nil {
		t.Fatalf("InsertNodes: %v", err)
	}

	aOut, _ := a.Output("out")
	badIn, _ := bad.Input("in")
	badOut, _ := bad.Output("out")
	badSinkIn, _ := badSink.Input("in")
	if err := port.Connect(aOut, badIn); err != nil {
		t.Fatalf("Connect a->bad: %v", err)
	}
	if err := port.Connect(badOut, badSinkIn); err != nil {
		t.Fatalf("Connect bad->badSink: %v", err)
	}

	goodOut, _ := good.Output("out")
	goodSinkIn, _ := goodSink.Input("in")
	if err := port.Connect(goodOut, goodSinkIn); err != nil {
		t.Fatalf("Connect good->goodSink: %v", err)
	}

	err := g.UpdateConcurrent(context.Background(), 0)
	if err == nil {
		t.Fatal("UpdateConcurrent() = nil, want error identifying bad")
	}
	if !errors.Is(err, pnode.ErrComputeFailure) {
		t.Fatalf("UpdateConcurrent() err = %v, want ErrComputeFailure", err)
	}

	if bad.Status() != pnode.StatusError {
		t.Fatalf("bad.Status() = %v, want Error", bad.Status())
	}
	if badSink.Status() != pnode.StatusWaiting {
		t.Fatalf("badSink.Status() = %v, want Waiting", badSink.Status())
	}
	if got := sinkValue(t, goodSink); got != 9 {
		t.Fatalf("goodSink value = %d, want 9 (independent chain must still complete)", got)
	}
}

func TestUpdateConcurrentMatchesSerialUpdate(t *testing.T) {
	buildGraph := func() (*Graph, *intSinkNode) {
		g := New()
		a := newIntSourceNode(6)
		b := newIntSourceNode(7)
		sum := newAdderIntNode()
		sink := newIntSinkNode()
		if err := g.InsertNodes(a, b, sum, sink); err != nil {
			t.Fatalf("InsertNodes: %v", err)
		}
		aOut, _ := a.Output("out")
		bOut, _ := b.Output("out")
		sumA, _ := sum.Input("a")
		sumB, _ := sum.Input("b")
		sumOut, _ := sum.Output("sum")
		sinkIn, _ := sink.Input("in")
		if err := port.Connect(aOut, sumA); err != nil {
			t.Fatalf("Connect a->sum: %v", err)
		}
		if err := port.Connect(bOut, sumB); err != nil {
			t.Fatalf("Connect b->sum: %v", err)
		}
		if err := port.Connect(sumOut, sinkIn); err != nil {
			t.Fatalf("Connect sum->sink: %v", err)
		}
		return g, sink
	}

	serialGraph, serialSink := buildGraph()
	if err := serialGraph.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	concurrentGraph, concurrentSink := buildGraph()
	if err := concurrentGraph.UpdateConcurrent(context.Background(), 0); err != nil {
		t.Fatalf("UpdateConcurrent: %v", err)
	}

	if sinkValue(t, serialSink) != sinkValue(t, concurrentSink) {
		t.Fatalf("serial sink = %d, concurrent sink = %d, want equal", sinkValue(t, serialSink), sinkValue(t, concurrentSink))
	}
	if got := sinkValue(t, concurrentSink); got != 13 {
		t.Fatalf("concurrent sink = %d, want 13", got)
	}
}
