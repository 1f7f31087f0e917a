package node

import (
	"context"
	"fmt"

	"github.com/flowcore/engine/internal/service"
	"github.com/flowcore/engine/pkg/api"
)

type actionNode struct {
	id     api.NodeID
	cfg    *api.ActionConfig
	client service.ActionClient
}

func (r *Registry) newAction(n *api.Node) (Capability, error) {
	cfg, err := api.DecodeActionConfig(n.Data)
	if err != nil {
		return nil, err
	}
	return &actionNode{
		id:     n.ID,
		cfg:    cfg,
		client: r.services.Action,
	}, nil
}

// Execute performs the configured action and merges its result into the
// input
func (a *actionNode) Execute(
	ctx context.Context, run *RunContext,
) (*Result, error) {
	action := interpolate(a.cfg.Action, run)

	result, err := a.client.Perform(
		ctx, a.cfg.ActionType, action, run.Input,
	)
	if err != nil {
		return nil, err
	}

	output := mergeIntoInput(run.Input, api.Args{
		"actionType": a.cfg.ActionType,
		"action":     action,
		"result":     result,
	})

	return &Result{
		Output: output,
		Logs: infoLog(a.id,
			fmt.Sprintf("%s action performed", a.cfg.ActionType)),
	}, nil
}
