package graph

import "github.com/arjunv/flowgraph/pkg/id"

// Edge is a derived directed connection from an output port to an
// input port, identified by owning node and port name, for use by an
// external visualization collaborator (spec 6).
type Edge struct {
	FromNode id.ID
	FromPort string
	ToNode   id.ID
	ToPort   string
}

// NodeView is the read-only shape of a node an external collaborator
// needs to render it: its tag, identity, and port names.
type NodeView struct {
	Tag         string
	ID          id.ID
	InputNames  []string
	OutputNames []string
}

// Inspector is the read-only surface a visualization exporter uses
// to walk a Graph without importing pnode or registry directly. It is
// not part of the core's execution path.
type Inspector interface {
	NodeViews() ([]NodeView, error)
	Edges() []Edge
}

// inspector adapts a Graph and a tag resolver into an Inspector.
type inspector struct {
	g     *Graph
	tagOf func(n interface{ ID() id.ID }) (string, error)
}

// NewInspector returns an Inspector over g, resolving each node's tag
// via tagOf (typically registry.Registry.TagOf applied to the node's
// concrete type).
func NewInspector(g *Graph, tagOf func(n interface{ ID() id.ID }) (string, error)) Inspector {
	return &inspector{g: g, tagOf: tagOf}
}

func (ins *inspector) NodeViews() ([]NodeView, error) {
	views := make([]NodeView, 0, len(ins.g.order))
	for _, n := range ins.g.Nodes() {
		tag, err := ins.tagOf(n)
		if err != nil {
			return nil, err
		}
		views = append(views, NodeView{
			Tag:         tag,
			ID:          n.ID(),
			InputNames:  n.InputNames(),
			OutputNames: n.OutputNames(),
		})
	}
	return views, nil
}

func (ins *inspector) Edges() []Edge {
	var edges []Edge
	for _, n := range ins.g.Nodes() {
		for _, name := range n.InputNames() {
			in, err := n.Input(name)
			if err != nil || in.Source() == nil {
				continue
			}
			src := in.Source()
			fromPort := ""
			if srcNode, ok := ins.g.Node(src.ParentID()); ok {
				for _, outName := range srcNode.OutputNames() {
					out, _ := srcNode.Output(outName)
					if out != nil && out.ID() == src.ID() {
						fromPort = outName
						break
					}
				}
			}
			edges = append(edges, Edge{
				FromNode: src.ParentID(),
				FromPort: fromPort,
				ToNode:   n.ID(),
				ToPort:   name,
			})
		}
	}
	return edges
}
