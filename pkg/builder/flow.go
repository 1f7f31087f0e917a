// Package builder provides a fluent interface for assembling flow
// definitions programmatically, primarily for tests and embedding hosts
// that construct flows without a visual editor
package builder

import (
	"fmt"

	"github.com/flowcore/engine/pkg/api"
)

// Flow accumulates nodes and edges for an api.Flow. Each method returns
// a copy, so partially built flows can be shared and forked safely
type Flow struct {
	id    api.FlowID
	name  string
	meta  *api.Metadata
	nodes []api.Node
	edges []api.Edge
}

// NewFlow creates a new flow builder with the specified ID
func NewFlow(id api.FlowID) *Flow {
	return &Flow{id: id}
}

// Named sets the flow's display name
func (f *Flow) Named(name string) *Flow {
	res := *f
	res.name = name
	return &res
}

// WithMetadata attaches flow-level metadata
func (f *Flow) WithMetadata(meta *api.Metadata) *Flow {
	res := *f
	res.meta = meta
	return &res
}

// WithNode adds a node of the given type with an open configuration
// mapping. The typed helpers below cover the built-in node types
func (f *Flow) WithNode(
	id api.NodeID, t api.NodeType, data api.Args,
) *Flow {
	res := *f
	res.nodes = append(res.nodes[:len(res.nodes):len(res.nodes)],
		api.Node{ID: id, Type: t, Data: data})
	return &res
}

// Entry adds an entry node
func (f *Flow) Entry(id api.NodeID) *Flow {
	return f.WithNode(id, api.NodeEntry, nil)
}

// Exit adds an exit node
func (f *Flow) Exit(id api.NodeID) *Flow {
	return f.WithNode(id, api.NodeExit, nil)
}

// LLM adds a model completion node
func (f *Flow) LLM(id api.NodeID, model, prompt string) *Flow {
	return f.WithNode(id, api.NodeLLM, api.Args{
		"model":  model,
		"prompt": prompt,
	})
}

// Tool adds a tool invocation node
func (f *Flow) Tool(id api.NodeID, tool string) *Flow {
	return f.WithNode(id, api.NodeTool, api.Args{
		"tool": tool,
	})
}

// RAG adds a retrieval node
func (f *Flow) RAG(id api.NodeID, collection, query string, topK int) *Flow {
	return f.WithNode(id, api.NodeRAG, api.Args{
		"collection": collection,
		"query":      query,
		"topK":       topK,
	})
}

// Condition adds a branching node whose true and false targets are wired
// by edge handles
func (f *Flow) Condition(id api.NodeID, condition, language string) *Flow {
	return f.WithNode(id, api.NodeCondition, api.Args{
		"condition": condition,
		"language":  language,
	})
}

// Edge connects two nodes
func (f *Flow) Edge(source, target api.NodeID) *Flow {
	return f.EdgeOn(source, target, "")
}

// EdgeOn connects two nodes with a labeled source handle
func (f *Flow) EdgeOn(source, target api.NodeID, handle api.Handle) *Flow {
	res := *f
	res.edges = append(res.edges[:len(res.edges):len(res.edges)],
		api.Edge{
			Source:       source,
			Target:       target,
			SourceHandle: handle,
		})
	return &res
}

// Build assembles the flow, assigning sequential edge IDs
func (f *Flow) Build() *api.Flow {
	edges := make([]api.Edge, len(f.edges))
	for i, e := range f.edges {
		e.ID = api.EdgeID(fmt.Sprintf("e%d", i+1))
		edges[i] = e
	}
	return &api.Flow{
		ID:       f.id,
		Name:     f.name,
		Metadata: f.meta,
		Nodes:    append([]api.Node{}, f.nodes...),
		Edges:    edges,
	}
}
