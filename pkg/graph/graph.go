package graph

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arjunv/flowgraph/pkg/id"
	"github.com/arjunv/flowgraph/pkg/logging"
	"github.com/arjunv/flowgraph/pkg/observer"
	"github.com/arjunv/flowgraph/pkg/pnode"
)

// Graph is the node container. It owns every Node inserted into it
// and is not internally synchronized: concurrent mutation of the
// same Graph is the caller's responsibility (spec 5).
//
// Every Update/UpdateConcurrent call reports its progress through an
// observer.Manager and a structured logger, both optional: a Graph
// with no registered observers and the default logger pays only the
// cost of a HasObservers check and a suppressed Debug call.
type Graph struct {
	graphID id.ID
	nodes   map[id.ID]pnode.Node
	order   []id.ID

	observerMgr *observer.Manager
	logger      *logging.Logger
}

// New returns an empty Graph with a fresh identity, no registered
// observers, and a default logger at info level.
func New() *Graph {
	return &Graph{
		graphID:     id.New(),
		nodes:       make(map[id.ID]pnode.Node),
		observerMgr: observer.NewManager(),
		logger:      logging.New(logging.DefaultConfig()),
	}
}

// ID returns the graph's own identity, used to correlate observer
// events and log lines across concurrent updates of different graphs.
func (g *Graph) ID() id.ID { return g.graphID }

// RegisterObserver adds obs to the set notified of graph/node update
// lifecycle events. A nil obs is ignored.
func (g *Graph) RegisterObserver(obs observer.Observer) {
	g.observerMgr.Register(obs)
}

// SetLogger replaces the graph's structured logger. A nil logger is
// ignored, leaving the previous logger in place.
func (g *Graph) SetLogger(logger *logging.Logger) *Graph {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// InsertNode adds n, keyed by its current ID. It fails with
// ErrDuplicateNode if a node with that ID is already present.
func (g *Graph) InsertNode(n pnode.Node) error {
	if _, exists := g.nodes[n.ID()]; exists {
		return duplicateNode(n.ID())
	}
	g.nodes[n.ID()] = n
	g.order = append(g.order, n.ID())
	return nil
}

// InsertNodes inserts each node in order. It is best-effort: if a
// later insertion fails, earlier successful insertions are kept. The
// returned error, if any, wraps every failure encountered.
func (g *Graph) InsertNodes(ns ...pnode.Node) error {
	var errs []error
	for _, n := range ns {
		if err := g.InsertNode(n); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	joined := errs[0]
	for _, e := range errs[1:] {
		joined = fmt.Errorf("%w; %w", joined, e)
	}
	return joined
}

// RemoveNode removes the node with the given ID, detaching every
// connection that touches it in either direction. It is a no-op if
// nodeID is not present.
func (g *Graph) RemoveNode(nodeID id.ID) {
	n, exists := g.nodes[nodeID]
	if !exists {
		return
	}

	for _, name := range n.InputNames() {
		in, err := n.Input(name)
		if err != nil {
			continue
		}
		in.Detach()
	}
	for _, name := range n.OutputNames() {
		out, err := n.Output(name)
		if err != nil {
			continue
		}
		for _, sink := range out.Sinks() {
			sink.Detach()
		}
	}

	delete(g.nodes, nodeID)
	for i, candidate := range g.order {
		if candidate == nodeID {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Node returns the node with the given ID, or false if absent.
func (g *Graph) Node(nodeID id.ID) (pnode.Node, bool) {
	n, ok := g.nodes[nodeID]
	return n, ok
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []pnode.Node {
	out := make([]pnode.Node, 0, len(g.order))
	for _, nodeID := range g.order {
		out = append(out, g.nodes[nodeID])
	}
	return out
}

// predecessors returns, for a given node, the set of node IDs that
// feed at least one of its input ports.
func (g *Graph) predecessors(n pnode.Node) []id.ID {
	var preds []id.ID
	for _, name := range n.InputNames() {
		in, err := n.Input(name)
		if err != nil || in.Source() == nil {
			continue
		}
		preds = append(preds, in.Source().ParentID())
	}
	return preds
}

// topoOrder computes a topological ordering of the held nodes by
// Kahn's algorithm, breaking ties by insertion order (spec 4.F). It
// fails with ErrCycleDetected if the dependency graph is not acyclic.
func (g *Graph) topoOrder() ([]id.ID, error) {
	inDegree := make(map[id.ID]int, len(g.order))
	successors := make(map[id.ID][]id.ID, len(g.order))

	for _, nodeID := range g.order {
		inDegree[nodeID] = 0
	}
	for _, nodeID := range g.order {
		n := g.nodes[nodeID]
		for _, predID := range g.predecessors(n) {
			if _, ok := g.nodes[predID]; !ok {
				continue
			}
			successors[predID] = append(successors[predID], nodeID)
			inDegree[nodeID]++
		}
	}

	queue := make([]id.ID, 0, len(g.order))
	for _, nodeID := range g.order {
		if inDegree[nodeID] == 0 {
			queue = append(queue, nodeID)
		}
	}

	result := make([]id.ID, 0, len(g.order))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		// Walk successors in original insertion order so ties resolve
		// deterministically.
		for _, nodeID := range g.order {
			if inDegree[nodeID] == 0 {
				continue
			}
			isSuccessor := false
			for _, s := range successors[current] {
				if s == nodeID {
					isSuccessor = true
					break
				}
			}
			if !isSuccessor {
				continue
			}
			inDegree[nodeID]--
			if inDegree[nodeID] == 0 {
				queue = append(queue, nodeID)
			}
		}
	}

	if len(result) != len(g.order) {
		return nil, ErrCycleDetected
	}
	return result, nil
}

// levels groups topoOrder's result into waves where every node in a
// wave has no dependency on another node in the same wave, for use by
// UpdateConcurrent.
func (g *Graph) levels() ([][]id.ID, error) {
	inDegree := make(map[id.ID]int, len(g.order))
	successors := make(map[id.ID][]id.ID, len(g.order))
	for _, nodeID := range g.order {
		inDegree[nodeID] = 0
	}
	for _, nodeID := range g.order {
		n := g.nodes[nodeID]
		for _, predID := range g.predecessors(n) {
			if _, ok := g.nodes[predID]; !ok {
				continue
			}
			successors[predID] = append(successors[predID], nodeID)
			inDegree[nodeID]++
		}
	}

	remaining := len(g.order)
	var result [][]id.ID
	processed := make(map[id.ID]bool, len(g.order))
	for remaining > 0 {
		var wave []id.ID
		for _, nodeID := range g.order {
			if !processed[nodeID] && inDegree[nodeID] == 0 {
				wave = append(wave, nodeID)
			}
		}
		if len(wave) == 0 {
			return nil, ErrCycleDetected
		}
		for _, nodeID := range wave {
			processed[nodeID] = true
			remaining--
			for _, s := range successors[nodeID] {
				inDegree[s]--
			}
		}
		result = append(result, wave)
	}
	return result, nil
}

// Update runs the global scheduling algorithm (spec 4.F): topological
// order, then each node's local Update in turn. The first compute
// failure is returned identifying the failing node; nodes downstream
// of it naturally settle into Waiting because their upstream's output
// never leaves that state. Every update is reported through the
// graph's observers and structured logger.
func (g *Graph) Update() error {
	order, err := g.topoOrder()
	if err != nil {
		return err
	}

	ctx := context.Background()
	start := time.Now()
	log := g.logger.WithGraphID(g.graphID.String())
	g.notifyGraphStart(ctx, start)
	log.Debug("graph update started")

	var firstErr error
	updated := 0
	for _, nodeID := range order {
		n := g.nodes[nodeID]
		nodeStart := time.Now()
		g.notifyNodeStart(ctx, n, nodeStart)

		updateErr := n.Update()
		g.notifyNodeDone(ctx, n, nodeStart, updateErr)

		nodeLog := log.WithNodeID(nodeID.String()).WithNodeTag(nodeTag(n))
		if updateErr != nil {
			nodeLog.WithError(updateErr).Error("node update failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("graph: node %s: %w", nodeID, updateErr)
			}
			continue
		}
		updated++
		nodeLog.Debug("node updated")
	}

	if firstErr != nil {
		log.WithError(firstErr).Error("graph update failed")
	} else {
		log.Debug("graph update completed")
	}
	g.notifyGraphEnd(ctx, start, updated, firstErr)
	return firstErr
}

// UpdateConcurrent is the optional asynchronous scheduling variant
// (spec 5): nodes in the same dependency wave run concurrently, with
// a barrier between waves so a node never starts before all of its
// upstreams have completed. Ordering between sibling nodes in the
// same wave is unspecified. Every update is reported through the
// graph's observers and structured logger, same as Update.
func (g *Graph) UpdateConcurrent(ctx context.Context, maxWorkers int) error {
	waves, err := g.levels()
	if err != nil {
		return err
	}

	start := time.Now()
	log := g.logger.WithGraphID(g.graphID.String())
	g.notifyGraphStart(ctx, start)
	log.Debug("graph update started (concurrent)")

	var firstErr error
	var updated atomic.Int64
	for _, wave := range waves {
		grp, grpCtx := errgroup.WithContext(ctx)
		if maxWorkers > 0 {
			grp.SetLimit(maxWorkers)
		}
		for _, nodeID := range wave {
			nodeID := nodeID
			grp.Go(func() error {
				n := g.nodes[nodeID]
				nodeStart := time.Now()
				g.notifyNodeStart(grpCtx, n, nodeStart)

				updateErr := n.Update()
				g.notifyNodeDone(grpCtx, n, nodeStart, updateErr)

				nodeLog := log.WithNodeID(nodeID.String()).WithNodeTag(nodeTag(n))
				if updateErr != nil {
					nodeLog.WithError(updateErr).Error("node update failed")
					return fmt.Errorf("graph: node %s: %w", nodeID, updateErr)
				}
				updated.Add(1)
				nodeLog.Debug("node updated")
				return nil
			})
		}
		if err := grp.Wait(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		log.WithError(firstErr).Error("graph update failed")
	} else {
		log.Debug("graph update completed")
	}
	g.notifyGraphEnd(ctx, start, int(updated.Load()), firstErr)
	return firstErr
}

// notifyGraphStart emits EventGraphStart if any observer is
// registered. It is a no-op otherwise, so an unobserved graph pays
// only the HasObservers check.
func (g *Graph) notifyGraphStart(ctx context.Context, start time.Time) {
	if !g.observerMgr.HasObservers() {
		return
	}
	g.observerMgr.Notify(ctx, observer.Event{
		Type:      observer.EventGraphStart,
		Status:    observer.StatusStarted,
		Timestamp: start,
		GraphID:   g.graphID.String(),
		StartTime: start,
	})
}

// notifyGraphEnd emits EventGraphEnd carrying the update outcome and
// how many nodes updated without error.
func (g *Graph) notifyGraphEnd(ctx context.Context, start time.Time, nodesUpdated int, err error) {
	if !g.observerMgr.HasObservers() {
		return
	}
	status := observer.StatusSuccess
	if err != nil {
		status = observer.StatusFailure
	}
	g.observerMgr.Notify(ctx, observer.Event{
		Type:        observer.EventGraphEnd,
		Status:      status,
		Timestamp:   time.Now(),
		GraphID:     g.graphID.String(),
		StartTime:   start,
		ElapsedTime: time.Since(start),
		Error:       err,
		Metadata:    map[string]interface{}{"nodes_updated": nodesUpdated},
	})
}

// notifyNodeStart emits EventNodeStart for a single node's local
// Update call.
func (g *Graph) notifyNodeStart(ctx context.Context, n pnode.Node, start time.Time) {
	if !g.observerMgr.HasObservers() {
		return
	}
	g.observerMgr.Notify(ctx, observer.Event{
		Type:      observer.EventNodeStart,
		Status:    observer.StatusStarted,
		Timestamp: start,
		GraphID:   g.graphID.String(),
		NodeID:    n.ID().String(),
		NodeTag:   nodeTag(n),
		StartTime: start,
	})
}

// notifyNodeDone emits EventNodeSuccess or EventNodeFailure depending
// on whether the node's Update call returned an error.
func (g *Graph) notifyNodeDone(ctx context.Context, n pnode.Node, start time.Time, err error) {
	if !g.observerMgr.HasObservers() {
		return
	}
	eventType := observer.EventNodeSuccess
	status := observer.StatusSuccess
	if err != nil {
		eventType = observer.EventNodeFailure
		status = observer.StatusFailure
	}
	g.observerMgr.Notify(ctx, observer.Event{
		Type:        eventType,
		Status:      status,
		Timestamp:   time.Now(),
		GraphID:     g.graphID.String(),
		NodeID:      n.ID().String(),
		NodeTag:     nodeTag(n),
		StartTime:   start,
		ElapsedTime: time.Since(start),
		Error:       err,
	})
}

// nodeTag derives a human-readable tag for observer events from a
// node's concrete Go type. It deliberately does not depend on
// registry.Registry: a Graph has no registry reference of its own,
// and an unregistered node variant must still be observable.
func nodeTag(n pnode.Node) string {
	return fmt.Sprintf("%T", n)
}
