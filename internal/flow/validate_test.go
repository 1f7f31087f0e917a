package flow_test

import (
	"testing"

	testify "github.com/stretchr/testify/assert"

	"github.com/flowcore/engine/internal/flow"
	"github.com/flowcore/engine/pkg/api"
)

func linearFlow() *api.Flow {
	return &api.Flow{
		ID: "linear",
		Nodes: []api.Node{
			{ID: "start", Type: api.NodeEntry},
			{ID: "work", Type: api.NodeTool,
				Data: api.Args{"tool": "echo"}},
			{ID: "end", Type: api.NodeExit},
		},
		Edges: []api.Edge{
			{ID: "e1", Source: "start", Target: "work"},
			{ID: "e2", Source: "work", Target: "end"},
		},
	}
}

func TestValidateEdgesClean(t *testing.T) {
	testify.NoError(t, flow.ValidateEdges(linearFlow()))
}

func TestValidateEdgesDangling(t *testing.T) {
	f := linearFlow()
	f.Edges = append(f.Edges,
		api.Edge{ID: "e3", Source: "ghost", Target: "end"},
		api.Edge{ID: "e4", Source: "work", Target: "nowhere"},
	)
	err := flow.ValidateEdges(f)
	testify.ErrorIs(t, err, flow.ErrDanglingSource)
	testify.ErrorIs(t, err, flow.ErrDanglingTarget)
	testify.ErrorContains(t, err, "ghost")
	testify.ErrorContains(t, err, "nowhere")
}

func TestValidateEdgesDanglingBranchTarget(t *testing.T) {
	f := linearFlow()
	f.Nodes = append(f.Nodes, api.Node{
		ID:   "check",
		Type: api.NodeCondition,
		Data: api.Args{
			"condition": "state.done",
			"trueNode":  "ghost",
			"falseNode": "end",
		},
	})
	f.Edges = append(f.Edges,
		api.Edge{ID: "e3", Source: "work", Target: "check"},
		api.Edge{ID: "e4", Source: "check", Target: "end"},
	)

	err := flow.ValidateEdges(f)
	testify.ErrorIs(t, err, flow.ErrDanglingBranch)
	testify.ErrorContains(t, err, "ghost")
}

func TestValidateEdgesIllegalCycle(t *testing.T) {
	f := linearFlow()
	f.Edges = append(f.Edges,
		api.Edge{ID: "e3", Source: "work", Target: "work"})
	err := flow.ValidateEdges(f)
	testify.ErrorIs(t, err, flow.ErrIllegalCycle)
}

func TestValidateEdgesConditionCycle(t *testing.T) {
	f := &api.Flow{
		ID: "loop",
		Nodes: []api.Node{
			{ID: "start", Type: api.NodeEntry},
			{ID: "check", Type: api.NodeCondition,
				Data: api.Args{"condition": "state.done"}},
			{ID: "work", Type: api.NodeTool,
				Data: api.Args{"tool": "echo"}},
			{ID: "end", Type: api.NodeExit},
		},
		Edges: []api.Edge{
			{ID: "e1", Source: "start", Target: "check"},
			{ID: "e2", Source: "check", Target: "work",
				SourceHandle: api.HandleFalse},
			{ID: "e3", Source: "work", Target: "check"},
			{ID: "e4", Source: "check", Target: "end",
				SourceHandle: api.HandleTrue},
		},
	}
	testify.NoError(t, flow.ValidateEdges(f))
}

func TestValidateShapeClean(t *testing.T) {
	testify.NoError(t, flow.ValidateShape(linearFlow()))
}

func TestValidateShapeNoEntry(t *testing.T) {
	f := linearFlow()
	f.Nodes = f.Nodes[1:]
	err := flow.ValidateShape(f)
	testify.ErrorIs(t, err, flow.ErrNoEntry)
	testify.ErrorContains(t, err, "entry")
}

func TestValidateShapeNoExit(t *testing.T) {
	f := linearFlow()
	f.Nodes = f.Nodes[:2]
	f.Edges = f.Edges[:1]
	err := flow.ValidateShape(f)
	testify.ErrorIs(t, err, flow.ErrNoExit)
	testify.ErrorContains(t, err, "exit")
}

func TestValidateShapeMultipleEntries(t *testing.T) {
	f := linearFlow()
	f.Nodes = append(f.Nodes, api.Node{ID: "start2", Type: api.NodeEntry})
	err := flow.ValidateShape(f)
	testify.ErrorIs(t, err, flow.ErrMultipleEntry)
}

func TestValidateShapeEntryInbound(t *testing.T) {
	f := linearFlow()
	f.Edges = append(f.Edges,
		api.Edge{ID: "e3", Source: "work", Target: "start"})
	err := flow.ValidateShape(f)
	testify.ErrorIs(t, err, flow.ErrEntryInbound)
}

func TestValidateShapeUnreachable(t *testing.T) {
	f := linearFlow()
	f.Nodes = append(f.Nodes,
		api.Node{ID: "island1", Type: api.NodeTool,
			Data: api.Args{"tool": "echo"}},
		api.Node{ID: "island2", Type: api.NodeTool,
			Data: api.Args{"tool": "echo"}},
	)
	f.Edges = append(f.Edges,
		api.Edge{ID: "e3", Source: "island1", Target: "island2"})

	err := flow.ValidateShape(f)
	testify.ErrorIs(t, err, flow.ErrUnreachable)
	testify.ErrorContains(t, err, "island1")
	testify.ErrorContains(t, err, "island2")
}

func TestValidateIdempotent(t *testing.T) {
	f := linearFlow()
	f.Nodes = append(f.Nodes, api.Node{ID: "island", Type: api.NodeExit})
	f.Edges = append(f.Edges,
		api.Edge{ID: "e3", Source: "work", Target: "work"})

	firstEdges := flow.ValidateEdges(f)
	secondEdges := flow.ValidateEdges(f)
	testify.Error(t, firstEdges)
	testify.Equal(t, firstEdges.Error(), secondEdges.Error())

	firstShape := flow.ValidateShape(f)
	secondShape := flow.ValidateShape(f)
	testify.Error(t, firstShape)
	testify.Equal(t, firstShape.Error(), secondShape.Error())
}
