package node

import (
	"context"
	"fmt"

	"github.com/flowcore/engine/internal/script"
	"github.com/flowcore/engine/pkg/api"
)

type conditionNode struct {
	id       api.NodeID
	cfg      *api.ConditionConfig
	env      script.Environment
	compiled script.Compiled
}

func (r *Registry) newCondition(n *api.Node) (Capability, error) {
	cfg, err := api.DecodeConditionConfig(n.Data)
	if err != nil {
		return nil, err
	}

	env, err := r.scripts.Get(cfg.Language)
	if err != nil {
		return nil, err
	}

	compiled, err := env.Compile(cfg.Condition)
	if err != nil {
		return nil, fmt.Errorf("condition %q: %w", cfg.Condition, err)
	}

	return &conditionNode{
		id:       n.ID,
		cfg:      cfg,
		env:      env,
		compiled: compiled,
	}, nil
}

// Execute evaluates the predicate over the run document and selects a
// branch. Explicit trueNode/falseNode targets take priority; otherwise
// the handle names the outgoing edge for the executor to follow
func (c *conditionNode) Execute(
	_ context.Context, run *RunContext,
) (*Result, error) {
	outcome, err := c.env.EvaluatePredicate(c.compiled, run.Doc())
	if err != nil {
		return nil, err
	}

	res := &Result{
		Output: run.Input,
		Logs: infoLog(c.id,
			fmt.Sprintf("condition evaluated to %t", outcome)),
	}

	if outcome {
		res.Next = c.cfg.TrueNode
		res.Handle = api.HandleTrue
	} else {
		res.Next = c.cfg.FalseNode
		res.Handle = api.HandleFalse
	}
	return res, nil
}
