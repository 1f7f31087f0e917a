package node

import (
	"context"
	"fmt"
	"strings"

	"github.com/flowcore/engine/internal/service"
	"github.com/flowcore/engine/pkg/api"
)

type llmNode struct {
	id     api.NodeID
	cfg    *api.LLMConfig
	client service.ModelClient
}

func (r *Registry) newLLM(n *api.Node) (Capability, error) {
	cfg, err := api.DecodeLLMConfig(n.Data)
	if err != nil {
		return nil, err
	}
	return &llmNode{
		id:     n.ID,
		cfg:    cfg,
		client: r.services.Model,
	}, nil
}

// Execute interpolates the prompt template against the run document and
// asks the model for a completion. Retrieved fragments, when present,
// prefix the prompt as context
func (l *llmNode) Execute(
	ctx context.Context, run *RunContext,
) (*Result, error) {
	prompt := interpolate(l.cfg.Prompt, run)
	if prompt == "" {
		prompt = inputText(run.Input)
	} else if l.cfg.Prompt == prompt && run.Input != nil {
		prompt = fmt.Sprintf("%s\n\n%s", prompt, inputText(run.Input))
	}

	if len(run.Fragments) > 0 {
		prompt = fmt.Sprintf(
			"Context:\n%s\n\n%s",
			strings.Join(run.Fragments, "\n"), prompt,
		)
	}

	output, err := l.client.Complete(ctx, service.CompletionRequest{
		Model:       l.cfg.Model,
		Prompt:      prompt,
		Temperature: l.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Output: output,
		Logs: infoLog(l.id,
			fmt.Sprintf("completion from %s", l.cfg.Model)),
	}, nil
}
