package tests

import (
	"context"

	"github.com/flowcore/engine/internal/node"
	"github.com/flowcore/engine/internal/script"
	"github.com/flowcore/engine/internal/service"
	"github.com/flowcore/engine/pkg/api"
)

// newScenarioRegistry builds a registry backed by local stand-in services
// plus a seeded knowledge base and a counter extension node used by the
// looping scenarios
func newScenarioRegistry() *node.Registry {
	retriever := service.NewMemoryRetriever()
	retriever.Add("kb",
		"the gateway listens on port 8443",
		"flows are validated before execution",
		"the archive stores finalized runs")

	services := service.Services{Retriever: retriever}
	reg := node.NewRegistry(services, script.NewRegistry())
	reg.Register("counter", newCounterNode)
	return reg
}

type counterNode struct{}

func newCounterNode(*api.Node) (node.Capability, error) {
	return &counterNode{}, nil
}

// Execute increments the run's count, carrying the input through
func (*counterNode) Execute(
	_ context.Context, run *node.RunContext,
) (*node.Result, error) {
	count, _ := run.State["count"].(int)
	return &node.Result{
		Output: run.Input,
		Patch:  api.Args{"count": count + 1},
	}, nil
}

func visited(res *api.ExecutionResult) []api.NodeID {
	ids := make([]api.NodeID, len(res.Steps))
	for i, step := range res.Steps {
		ids[i] = step.NodeID
	}
	return ids
}
