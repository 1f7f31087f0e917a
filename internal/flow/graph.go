package flow

import (
	"errors"
	"fmt"

	"github.com/flowcore/engine/pkg/api"
	"github.com/flowcore/engine/pkg/util"
)

type (
	// Graph is the read-only runtime view over a validated flow: O(1)
	// node lookup by id, successor lookup in edge declaration order, and
	// entry/exit lookup. A Graph is built once at executor construction
	// and exposes no mutation during a run
	Graph struct {
		flow       *api.Flow
		nodes      map[api.NodeID]*api.Node
		successors map[api.NodeID][]successor
		entry      api.NodeID
		exits      util.Set[api.NodeID]
	}

	successor struct {
		target api.NodeID
		handle api.Handle
	}
)

var ErrNodeNotFound = errors.New("node not found in graph")

// NewGraph builds the runtime view over a flow. The flow must already
// have passed schema, edge, and shape validation; NewGraph reports a
// wiring error rather than re-running those checks
func NewGraph(f *api.Flow) (*Graph, error) {
	g := &Graph{
		flow:       f,
		nodes:      make(map[api.NodeID]*api.Node, len(f.Nodes)),
		successors: make(map[api.NodeID][]successor, len(f.Nodes)),
		exits:      util.Set[api.NodeID]{},
	}

	for i := range f.Nodes {
		node := &f.Nodes[i]
		g.nodes[node.ID] = node
		switch node.Type {
		case api.NodeEntry:
			g.entry = node.ID
		case api.NodeExit:
			g.exits.Add(node.ID)
		}
	}

	for _, edge := range f.Edges {
		if _, ok := g.nodes[edge.Source]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, edge.Source)
		}
		if _, ok := g.nodes[edge.Target]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, edge.Target)
		}
		g.successors[edge.Source] = append(g.successors[edge.Source],
			successor{target: edge.Target, handle: edge.SourceHandle})
	}

	return g, nil
}

// Flow returns the validated flow backing this graph
func (g *Graph) Flow() *api.Flow {
	return g.flow
}

// Node returns the node with the given id
func (g *Graph) Node(id api.NodeID) (*api.Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// Successors returns the outgoing-edge targets of a node in edge
// declaration order
func (g *Graph) Successors(id api.NodeID) []api.NodeID {
	succs := g.successors[id]
	if len(succs) == 0 {
		return nil
	}
	targets := make([]api.NodeID, len(succs))
	for i, s := range succs {
		targets[i] = s.target
	}
	return targets
}

// FirstSuccessor returns the first declared outgoing-edge target, or
// false when the node has none
func (g *Graph) FirstSuccessor(id api.NodeID) (api.NodeID, bool) {
	succs := g.successors[id]
	if len(succs) == 0 {
		return "", false
	}
	return succs[0].target, true
}

// SuccessorFor returns the outgoing-edge target whose source handle
// matches, or false when no edge declares that handle
func (g *Graph) SuccessorFor(
	id api.NodeID, handle api.Handle,
) (api.NodeID, bool) {
	for _, s := range g.successors[id] {
		if s.handle == handle {
			return s.target, true
		}
	}
	return "", false
}

// Entry returns the unique entry node id, guaranteed by shape validation
func (g *Graph) Entry() api.NodeID {
	return g.entry
}

// Exits returns the set of exit node ids
func (g *Graph) Exits() util.Set[api.NodeID] {
	return g.exits
}

// IsExit returns true when the node is an exit node
func (g *Graph) IsExit(id api.NodeID) bool {
	return g.exits.Contains(id)
}

// Len returns the number of nodes in the graph
func (g *Graph) Len() int {
	return len(g.nodes)
}
