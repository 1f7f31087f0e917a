package node

import (
	"context"
	"fmt"

	"github.com/flowcore/engine/pkg/api"
)

type (
	entryNode struct {
		id api.NodeID
	}

	exitNode struct {
		id api.NodeID
	}
)

func (r *Registry) newEntry(n *api.Node) (Capability, error) {
	return &entryNode{id: n.ID}, nil
}

// Execute passes the input through unchanged and marks the run as started
func (e *entryNode) Execute(
	_ context.Context, run *RunContext,
) (*Result, error) {
	return &Result{
		Output: run.Input,
		Logs:   infoLog(e.id, fmt.Sprintf("run started at %s", e.id)),
	}, nil
}

func (r *Registry) newExit(n *api.Node) (Capability, error) {
	return &exitNode{id: n.ID}, nil
}

// Execute passes the input through unchanged and marks the run as
// completed; the executor finalizes the run when an exit node returns
func (e *exitNode) Execute(
	_ context.Context, run *RunContext,
) (*Result, error) {
	return &Result{
		Output: run.Input,
		Logs:   infoLog(e.id, fmt.Sprintf("run completed at %s", e.id)),
	}, nil
}
