package node

import (
	"context"
	"fmt"

	"github.com/flowcore/engine/internal/service"
	"github.com/flowcore/engine/pkg/api"
)

type visionNode struct {
	id     api.NodeID
	cfg    *api.VisionConfig
	client service.VisionClient
}

func (r *Registry) newVision(n *api.Node) (Capability, error) {
	cfg, err := api.DecodeVisionConfig(n.Data)
	if err != nil {
		return nil, err
	}
	return &visionNode{
		id:     n.ID,
		cfg:    cfg,
		client: r.services.Vision,
	}, nil
}

// Execute describes the configured image and merges the description into
// the input
func (v *visionNode) Execute(
	ctx context.Context, run *RunContext,
) (*Result, error) {
	imageURL := interpolate(v.cfg.ImageURL, run)

	description, err := v.client.Describe(
		ctx, v.cfg.Model, imageURL, inputText(run.Input),
	)
	if err != nil {
		return nil, err
	}

	output := mergeIntoInput(run.Input, api.Args{
		"description": description,
		"imageUrl":    imageURL,
	})

	return &Result{
		Output: output,
		Logs:   infoLog(v.id, fmt.Sprintf("described image %s", imageURL)),
	}, nil
}

// mergeIntoInput merges extra keys over a map input, or wraps a scalar
// input under "input" alongside them
func mergeIntoInput(input any, extra api.Args) api.Args {
	var base api.Args
	switch v := input.(type) {
	case api.Args:
		base = v.Apply(extra)
	case map[string]any:
		base = api.Args(v).Apply(extra)
	default:
		base = api.Args{}
		if input != nil {
			base["input"] = input
		}
		base = base.Apply(extra)
	}
	return base
}
