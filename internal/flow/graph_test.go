package flow_test

import (
	"testing"

	testify "github.com/stretchr/testify/assert"

	"github.com/flowcore/engine/internal/flow"
	"github.com/flowcore/engine/pkg/api"
)

func TestGraphLookups(t *testing.T) {
	g, err := flow.NewGraph(linearFlow())
	testify.NoError(t, err)

	testify.Equal(t, api.NodeID("start"), g.Entry())
	testify.True(t, g.IsExit("end"))
	testify.False(t, g.IsExit("work"))
	testify.Equal(t, 3, g.Len())

	node, ok := g.Node("work")
	testify.True(t, ok)
	testify.Equal(t, api.NodeTool, node.Type)

	_, ok = g.Node("missing")
	testify.False(t, ok)
}

func TestGraphSuccessorOrder(t *testing.T) {
	f := linearFlow()
	f.Nodes = append(f.Nodes, api.Node{ID: "alt", Type: api.NodeExit})
	f.Edges = append(f.Edges,
		api.Edge{ID: "e3", Source: "work", Target: "alt"})

	g, err := flow.NewGraph(f)
	testify.NoError(t, err)

	// Declaration order is preserved
	testify.Equal(t, []api.NodeID{"end", "alt"}, g.Successors("work"))

	first, ok := g.FirstSuccessor("work")
	testify.True(t, ok)
	testify.Equal(t, api.NodeID("end"), first)

	_, ok = g.FirstSuccessor("end")
	testify.False(t, ok)
}

func TestGraphSuccessorFor(t *testing.T) {
	f := &api.Flow{
		ID: "branching",
		Nodes: []api.Node{
			{ID: "start", Type: api.NodeEntry},
			{ID: "check", Type: api.NodeCondition,
				Data: api.Args{"condition": "input.ok"}},
			{ID: "yes", Type: api.NodeExit},
			{ID: "no", Type: api.NodeExit},
		},
		Edges: []api.Edge{
			{ID: "e1", Source: "start", Target: "check"},
			{ID: "e2", Source: "check", Target: "yes",
				SourceHandle: api.HandleTrue},
			{ID: "e3", Source: "check", Target: "no",
				SourceHandle: api.HandleFalse},
		},
	}
	g, err := flow.NewGraph(f)
	testify.NoError(t, err)

	target, ok := g.SuccessorFor("check", api.HandleTrue)
	testify.True(t, ok)
	testify.Equal(t, api.NodeID("yes"), target)

	target, ok = g.SuccessorFor("check", api.HandleFalse)
	testify.True(t, ok)
	testify.Equal(t, api.NodeID("no"), target)

	_, ok = g.SuccessorFor("check", "maybe")
	testify.False(t, ok)
}

func TestGraphRejectsUnknownEndpoint(t *testing.T) {
	f := linearFlow()
	f.Edges = append(f.Edges,
		api.Edge{ID: "e3", Source: "ghost", Target: "end"})
	_, err := flow.NewGraph(f)
	testify.ErrorIs(t, err, flow.ErrNodeNotFound)
}
