package flow

import (
	"errors"
	"fmt"

	"github.com/flowcore/engine/pkg/api"
	"github.com/flowcore/engine/pkg/util"
)

var (
	ErrDanglingSource = errors.New("edge source references unknown node")
	ErrDanglingTarget = errors.New("edge target references unknown node")
	ErrDanglingBranch = errors.New(
		"condition branch target references unknown node")
	ErrIllegalCycle  = errors.New("cycle closes on non-condition node")
	ErrNoEntry       = errors.New("flow has no entry node")
	ErrMultipleEntry = errors.New("flow has multiple entry nodes")
	ErrNoExit        = errors.New("flow has no exit node")
	ErrEntryInbound  = errors.New("entry node has an inbound edge")
	ErrUnreachable   = errors.New("node unreachable from entry")
)

// ValidateEdges verifies that every edge's endpoints resolve to declared
// nodes, that any branch target a condition node declares resolves as
// well, and that any cycle in the graph closes only on a condition node.
// Cycle detection is a depth-first traversal carrying an explicit
// recursion stack: a back-edge into the stack is acceptable only when its
// target is a condition node. All dangling references and illegal cycles
// found are enumerated
func ValidateEdges(f *api.Flow) error {
	var errs []error

	types := make(map[api.NodeID]api.NodeType, len(f.Nodes))
	for _, node := range f.Nodes {
		types[node.ID] = node.Type
	}

	adjacency := make(map[api.NodeID][]api.NodeID, len(f.Nodes))
	for _, edge := range f.Edges {
		if _, ok := types[edge.Source]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s -> %s",
				ErrDanglingSource, edge.ID, edge.Source))
			continue
		}
		if _, ok := types[edge.Target]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s -> %s",
				ErrDanglingTarget, edge.ID, edge.Target))
			continue
		}
		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
	}

	for _, node := range f.Nodes {
		if node.Type != api.NodeCondition {
			continue
		}
		cfg, err := api.DecodeConditionConfig(node.Data)
		if err != nil {
			// malformed configs are reported by schema validation
			continue
		}
		for _, target := range []api.NodeID{cfg.TrueNode, cfg.FalseNode} {
			if target == "" {
				continue
			}
			if _, ok := types[target]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s -> %s",
					ErrDanglingBranch, node.ID, target))
			}
		}
	}

	visited := util.Set[api.NodeID]{}
	stack := util.Set[api.NodeID]{}

	var visit func(id api.NodeID)
	visit = func(id api.NodeID) {
		visited.Add(id)
		stack.Add(id)
		for _, next := range adjacency[id] {
			if stack.Contains(next) {
				if types[next] != api.NodeCondition {
					errs = append(errs, fmt.Errorf("%w: %s -> %s",
						ErrIllegalCycle, id, next))
				}
				continue
			}
			if !visited.Contains(next) {
				visit(next)
			}
		}
		stack.Remove(id)
	}

	for _, node := range f.Nodes {
		if !visited.Contains(node.ID) {
			visit(node.ID)
		}
	}

	return errors.Join(errs...)
}

// ValidateShape verifies the graph-level invariants that must hold before
// execution starts: exactly one entry node with no inbound edge, at least
// one exit node, and forward reachability of every node from the entry.
// Violations enumerate every offending node id
func ValidateShape(f *api.Flow) error {
	var errs []error

	var entry api.NodeID
	entries := 0
	exits := 0
	for _, node := range f.Nodes {
		switch node.Type {
		case api.NodeEntry:
			entries++
			entry = node.ID
		case api.NodeExit:
			exits++
		}
	}

	switch {
	case entries == 0:
		errs = append(errs, ErrNoEntry)
	case entries > 1:
		errs = append(errs, fmt.Errorf("%w: %d", ErrMultipleEntry, entries))
	}
	if exits == 0 {
		errs = append(errs, ErrNoExit)
	}

	if entries == 1 {
		for _, edge := range f.Edges {
			if edge.Target == entry {
				errs = append(errs,
					fmt.Errorf("%w: %s", ErrEntryInbound, edge.ID))
			}
		}
		for _, id := range unreachableFrom(f, entry) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnreachable, id))
		}
	}

	return errors.Join(errs...)
}

// unreachableFrom returns node ids not forward-reachable from start, in
// declaration order
func unreachableFrom(f *api.Flow, start api.NodeID) []api.NodeID {
	adjacency := make(map[api.NodeID][]api.NodeID, len(f.Nodes))
	for _, edge := range f.Edges {
		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
	}

	reached := util.SetOf(start)
	frontier := []api.NodeID{start}
	for len(frontier) > 0 {
		id := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, next := range adjacency[id] {
			if !reached.Contains(next) {
				reached.Add(next)
				frontier = append(frontier, next)
			}
		}
	}

	var unreachable []api.NodeID
	for _, node := range f.Nodes {
		if !reached.Contains(node.ID) {
			unreachable = append(unreachable, node.ID)
		}
	}
	return unreachable
}
