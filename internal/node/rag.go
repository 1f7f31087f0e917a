package node

import (
	"context"
	"fmt"

	"github.com/flowcore/engine/internal/service"
	"github.com/flowcore/engine/pkg/api"
)

type ragNode struct {
	id        api.NodeID
	cfg       *api.RAGConfig
	retriever service.Retriever
}

func (r *Registry) newRAG(n *api.Node) (Capability, error) {
	cfg, err := api.DecodeRAGConfig(n.Data)
	if err != nil {
		return nil, err
	}
	return &ragNode{
		id:        n.ID,
		cfg:       cfg,
		retriever: r.services.Retriever,
	}, nil
}

// Execute retrieves up to topK fragments for the query, defaulting the
// query to the current input, and passes the input through unchanged
func (g *ragNode) Execute(
	ctx context.Context, run *RunContext,
) (*Result, error) {
	query := interpolate(g.cfg.Query, run)
	if query == "" {
		query = inputText(run.Input)
	}

	fragments, err := g.retriever.Retrieve(
		ctx, g.cfg.Collection, query, g.cfg.TopK,
	)
	if err != nil {
		return nil, err
	}

	return &Result{
		Output:    run.Input,
		Fragments: fragments,
		Logs: infoLog(g.id, fmt.Sprintf(
			"retrieved %d fragments from %s",
			len(fragments), g.cfg.Collection,
		)),
	}, nil
}
