package graph

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/arjunv/flowgraph/pkg/id"
	"github.com/arjunv/flowgraph/pkg/meta"
	"github.com/arjunv/flowgraph/pkg/pnode"
	"github.com/arjunv/flowgraph/pkg/port"
	"github.com/arjunv/flowgraph/pkg/registry"
)

// Document is the persisted form of a Graph (spec 6).
type Document struct {
	Nodes []NodeRecord `json:"nodes"`
}

// NodeRecord is one node's persisted form.
type NodeRecord struct {
	Type        string                `json:"type"`
	UUID        string                `json:"uuid"`
	InputPorts  map[string]PortRecord `json:"inputPorts"`
	OutputPorts map[string]PortRecord `json:"outputPorts"`
	Data        meta.Tree             `json:"data,omitempty"`
}

// PortRecord is one port's persisted form. Source is only meaningful
// on an input port record; nil means unconnected.
type PortRecord struct {
	UUID   string  `json:"uuid"`
	Source *string `json:"source,omitempty"`
}

// Serialize writes g's current state as a Document. When useCache is
// true, a per-node subdirectory named after the node's UUID is
// created under cacheRoot and handed to the node's private
// serialization hook. It fails with ErrUnregisteredType if any node's
// concrete type was never registered with reg.
func Serialize(g *Graph, reg *registry.Registry, useCache bool, cacheRoot string) (*Document, error) {
	doc := &Document{Nodes: make([]NodeRecord, 0, len(g.order))}

	for _, nodeID := range g.order {
		n := g.nodes[nodeID]
		tag, err := reg.TagOf(reflect.TypeOf(n))
		if err != nil {
			return nil, fmt.Errorf("graph: serialize node %s: %w", nodeID, err)
		}

		record := NodeRecord{
			Type:        tag,
			UUID:        n.ID().String(),
			InputPorts:  make(map[string]PortRecord, len(n.InputNames())),
			OutputPorts: make(map[string]PortRecord, len(n.OutputNames())),
		}

		for _, name := range n.InputNames() {
			in, err := n.Input(name)
			if err != nil {
				return nil, err
			}
			pr := PortRecord{UUID: in.ID().String()}
			if src := in.Source(); src != nil {
				s := src.ID().String()
				pr.Source = &s
			}
			record.InputPorts[name] = pr
		}
		for _, name := range n.OutputNames() {
			out, err := n.Output(name)
			if err != nil {
				return nil, err
			}
			record.OutputPorts[name] = PortRecord{UUID: out.ID().String()}
		}

		var cacheDir string
		if useCache {
			cacheDir = filepath.Join(cacheRoot, n.ID().String())
			if err := ensureCacheDir(cacheDir); err != nil {
				return nil, fmt.Errorf("graph: cache dir for node %s: %w", nodeID, err)
			}
		}
		data, err := n.SerializePrivate(useCache, cacheDir)
		if err != nil {
			return nil, fmt.Errorf("graph: serialize private state for node %s: %w", nodeID, err)
		}
		record.Data = data

		doc.Nodes = append(doc.Nodes, record)
	}

	return doc, nil
}

// MarshalDocument renders doc as canonical JSON bytes (spec 6, the
// serialize round-trip law: identical documents marshal to identical
// bytes modulo key ordering, which encoding/json guarantees by
// sorting map keys).
func MarshalDocument(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}

// UnmarshalDocument validates data against DocumentSchema before
// decoding it, so a document corrupted by hand-editing or produced by
// a foreign tool fails with ErrMalformedDocument instead of reaching
// Deserialize as a superficially valid but semantically broken
// *Document.
func UnmarshalDocument(data []byte) (*Document, error) {
	if err := ValidateDocument(data, []byte(DocumentSchema)); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, malformedDocument(err)
	}
	return &doc, nil
}

// Deserialize reconstructs a Graph from a Document in two passes
// (spec 4.G): construct-and-rehydrate, then reconnect by UUID.
// Deserializing into a non-empty g merges by UUID; a UUID collision
// fails with ErrDuplicateNode. A dangling source reference fails with
// ErrDanglingSource.
func Deserialize(g *Graph, doc *Document, reg *registry.Registry, cacheRoot string) error {
	type constructed struct {
		record NodeRecord
		node   pnode.Node
	}
	built := make([]constructed, 0, len(doc.Nodes))

	for _, record := range doc.Nodes {
		n, err := reg.Create(record.Type)
		if err != nil {
			return fmt.Errorf("graph: deserialize node %s: %w", record.UUID, err)
		}

		nodeID, err := id.Parse(record.UUID)
		if err != nil {
			return fmt.Errorf("graph: node uuid: %w", err)
		}
		n.SetID(nodeID)

		if err := rehydratePorts(n, record); err != nil {
			return err
		}

		cacheDir := ""
		if cacheRoot != "" {
			cacheDir = filepath.Join(cacheRoot, nodeID.String())
		}
		if err := n.DeserializePrivate(record.Data, cacheDir); err != nil {
			return fmt.Errorf("graph: deserialize private state for node %s: %w", record.UUID, err)
		}

		if err := g.InsertNode(n); err != nil {
			return err
		}
		built = append(built, constructed{record: record, node: n})
	}

	outputByUUID := make(map[string]port.Output)
	for _, b := range built {
		for name := range b.record.OutputPorts {
			out, err := b.node.Output(name)
			if err != nil {
				return err
			}
			outputByUUID[out.ID().String()] = out
		}
	}

	for _, b := range built {
		for name, pr := range b.record.InputPorts {
			if pr.Source == nil {
				continue
			}
			in, err := b.node.Input(name)
			if err != nil {
				return err
			}
			out, ok := outputByUUID[*pr.Source]
			if !ok {
				srcID, parseErr := id.Parse(*pr.Source)
				if parseErr != nil {
					return fmt.Errorf("graph: source uuid: %w", parseErr)
				}
				return danglingSource(srcID)
			}
			if err := port.Connect(out, in); err != nil {
				return fmt.Errorf("graph: reconnect %s.%s: %w", b.record.UUID, name, err)
			}
		}
	}

	return nil
}

// rehydratePorts overwrites the UUIDs of n's already-declared ports
// (matched by name) from record, re-keying the node's internal
// by-ID lookup tables so the restored UUIDs become canonical.
func rehydratePorts(n pnode.Node, record NodeRecord) error {
	for name, pr := range record.InputPorts {
		portID, err := id.Parse(pr.UUID)
		if err != nil {
			return fmt.Errorf("graph: node %s: input %q uuid: %w", record.UUID, name, err)
		}
		if err := n.SetInputID(name, portID); err != nil {
			return fmt.Errorf("graph: node %s: input %q: %w", record.UUID, name, err)
		}
	}
	for name, pr := range record.OutputPorts {
		portID, err := id.Parse(pr.UUID)
		if err != nil {
			return fmt.Errorf("graph: node %s: output %q uuid: %w", record.UUID, name, err)
		}
		if err := n.SetOutputID(name, portID); err != nil {
			return fmt.Errorf("graph: node %s: output %q: %w", record.UUID, name, err)
		}
	}
	return nil
}
