package api

import (
	"errors"
	"fmt"
)

type (
	// Flow is the declarative directed graph authored upstream: an ordered
	// node sequence, an ordered edge sequence, and optional metadata. A
	// Flow is immutable for the duration of a run
	Flow struct {
		Metadata *Metadata `json:"metadata,omitempty"`
		ID       FlowID    `json:"id"`
		Name     string    `json:"name"`
		Nodes    []Node    `json:"nodes"`
		Edges    []Edge    `json:"edges"`
	}

	// Node is a typed unit of work in a flow. Data carries the open
	// configuration mapping whose shape depends on Type; it is decoded
	// into a typed config exactly once, at executor construction
	Node struct {
		Data     Args     `json:"data,omitempty"`
		ID       NodeID   `json:"id"`
		Type     NodeType `json:"type"`
		Position Position `json:"position"`
	}

	// Edge is a directed connection between two nodes, optionally labeled
	// with handles to disambiguate multi-output nodes
	Edge struct {
		ID           EdgeID `json:"id"`
		Source       NodeID `json:"source"`
		Target       NodeID `json:"target"`
		SourceHandle Handle `json:"source_handle,omitempty"`
		TargetHandle Handle `json:"target_handle,omitempty"`
	}

	// Position is canvas layout information. It is carried for upstream
	// editors and never consulted during execution
	Position struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}

	// Metadata contains optional flow-level context
	Metadata struct {
		Version      string   `json:"version,omitempty"`
		Description  string   `json:"description,omitempty"`
		Tags         []string `json:"tags,omitempty"`
		Capabilities []string `json:"capabilities,omitempty"`
	}
)

var (
	ErrFlowIDEmpty     = errors.New("flow ID empty")
	ErrFlowNoNodes     = errors.New("flow has no nodes")
	ErrNodeIDEmpty     = errors.New("node ID empty")
	ErrNodeIDDuplicate = errors.New("duplicate node ID")
	ErrNodeTypeEmpty   = errors.New("node type empty")
	ErrEdgeIDEmpty     = errors.New("edge ID empty")
	ErrEdgeIDDuplicate = errors.New("duplicate edge ID")
	ErrEdgeSourceEmpty = errors.New("edge source empty")
	ErrEdgeTargetEmpty = errors.New("edge target empty")
)

// Validate performs the schema-shape check on a flow, enumerating every
// structural violation found rather than stopping at the first. Per-node
// typed configuration is decoded for every built-in node type so that
// malformed data surfaces here, not during a run. Edge endpoint resolution
// and graph-shape invariants are separate checks layered above
func (f *Flow) Validate() error {
	var errs []error

	if f.ID == "" {
		errs = append(errs, ErrFlowIDEmpty)
	}
	if len(f.Nodes) == 0 {
		errs = append(errs, ErrFlowNoNodes)
	}

	seen := make(map[NodeID]struct{}, len(f.Nodes))
	for _, node := range f.Nodes {
		if node.ID == "" {
			errs = append(errs, ErrNodeIDEmpty)
			continue
		}
		if _, ok := seen[node.ID]; ok {
			errs = append(errs,
				fmt.Errorf("%w: %s", ErrNodeIDDuplicate, node.ID))
			continue
		}
		seen[node.ID] = struct{}{}

		if err := node.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	seenEdges := make(map[EdgeID]struct{}, len(f.Edges))
	for _, edge := range f.Edges {
		if err := edge.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, ok := seenEdges[edge.ID]; ok {
			errs = append(errs,
				fmt.Errorf("%w: %s", ErrEdgeIDDuplicate, edge.ID))
			continue
		}
		seenEdges[edge.ID] = struct{}{}
	}

	return errors.Join(errs...)
}

// Validate checks a node's schema shape and, for built-in types, decodes
// its typed configuration
func (n *Node) Validate() error {
	if n.Type == "" {
		return fmt.Errorf("%w: %s", ErrNodeTypeEmpty, n.ID)
	}
	if _, err := DecodeConfig(n); err != nil {
		return err
	}
	return nil
}

// Validate checks an edge's schema shape. Endpoint existence is verified
// separately against the flow's node set
func (e *Edge) Validate() error {
	if e.ID == "" {
		return ErrEdgeIDEmpty
	}
	if e.Source == "" {
		return fmt.Errorf("%w: %s", ErrEdgeSourceEmpty, e.ID)
	}
	if e.Target == "" {
		return fmt.Errorf("%w: %s", ErrEdgeTargetEmpty, e.ID)
	}
	return nil
}

// NodeByID returns the node with the given ID, or false when absent
func (f *Flow) NodeByID(id NodeID) (*Node, bool) {
	for i := range f.Nodes {
		if f.Nodes[i].ID == id {
			return &f.Nodes[i], true
		}
	}
	return nil, false
}
