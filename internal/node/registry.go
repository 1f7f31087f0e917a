package node

import (
	"errors"
	"fmt"

	"github.com/flowcore/engine/internal/script"
	"github.com/flowcore/engine/internal/service"
	"github.com/flowcore/engine/pkg/api"
	"github.com/flowcore/engine/pkg/util"
)

type (
	// Factory builds the capability instance for one node. Factories run
	// at executor construction, so configuration decoding errors surface
	// before any run starts
	Factory func(n *api.Node) (Capability, error)

	// Registry maps node type tags to capability factories
	Registry struct {
		factories map[api.NodeType]Factory
		services  service.Services
		scripts   *script.Registry
	}
)

var (
	ErrUnknownNodeType   = errors.New("unknown node type")
	ErrMissingCapability = errors.New("node type has no registered capability")
)

// NewRegistry creates a registry with every built-in capability wired to
// the given services
func NewRegistry(services service.Services, scripts *script.Registry) *Registry {
	r := &Registry{
		factories: map[api.NodeType]Factory{},
		services:  services.Defaulted(),
		scripts:   scripts,
	}

	r.Register(api.NodeEntry, r.newEntry)
	r.Register(api.NodeExit, r.newExit)
	r.Register(api.NodeLLM, r.newLLM)
	r.Register(api.NodeTool, r.newTool)
	r.Register(api.NodeRAG, r.newRAG)
	r.Register(api.NodeCondition, r.newCondition)
	r.Register(api.NodeVision, r.newVision)
	r.Register(api.NodeVoice, r.newVoice)
	r.Register(api.NodeAction, r.newAction)
	return r
}

// Register adds or replaces the factory for a type tag
func (r *Registry) Register(t api.NodeType, f Factory) {
	r.factories[t] = f
}

// Services exposes the defaulted service ports the capabilities run
// against, so the executor can hand run contexts the same secret source
func (r *Registry) Services() service.Services {
	return r.services
}

// Known reports whether a type tag has a registered factory
func (r *Registry) Known(t api.NodeType) bool {
	_, ok := r.factories[t]
	return ok
}

// New builds the capability instance for a node
func (r *Registry) New(n *api.Node) (Capability, error) {
	f, ok := r.factories[n.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, n.Type)
	}
	c, err := f(n)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", n.ID, err)
	}
	return c, nil
}

// Check verifies that every built-in type tag resolves to a factory,
// aggregating all gaps
func (r *Registry) Check(types util.Set[api.NodeType]) error {
	var errs []error
	for t := range types {
		if !r.Known(t) {
			errs = append(errs,
				fmt.Errorf("%w: %s", ErrMissingCapability, t))
		}
	}
	return errors.Join(errs...)
}
