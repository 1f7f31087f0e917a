package node

import (
	"context"
	"fmt"

	"github.com/flowcore/engine/internal/service"
	"github.com/flowcore/engine/pkg/api"
)

type toolNode struct {
	id    api.NodeID
	cfg   *api.ToolConfig
	tools service.Tools
}

func (r *Registry) newTool(n *api.Node) (Capability, error) {
	cfg, err := api.DecodeToolConfig(n.Data)
	if err != nil {
		return nil, err
	}
	return &toolNode{
		id:    n.ID,
		cfg:   cfg,
		tools: r.services.Tools,
	}, nil
}

func (t *toolNode) Execute(
	ctx context.Context, run *RunContext,
) (*Result, error) {
	output, err := t.tools.Invoke(ctx, t.cfg.Tool, run.Input)
	if err != nil {
		return nil, err
	}
	return &Result{
		Output: output,
		Logs:   infoLog(t.id, fmt.Sprintf("tool %s applied", t.cfg.Tool)),
	}, nil
}
