package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/flowcore/engine/internal/flow"
	"github.com/flowcore/engine/internal/node"
	"github.com/flowcore/engine/pkg/api"
)

type (
	// Executor runs a single validated flow. It is built once per flow
	// and safe for concurrent independent runs: the graph and capability
	// instances are read-only after construction
	Executor struct {
		graph    *flow.Graph
		caps     map[api.NodeID]node.Capability
		events   *Events
		logger   *slog.Logger
		registry *node.Registry
	}

	// Option configures an Executor at construction
	Option func(*Executor)
)

// WithEvents attaches a run-event topic; runs publish started, step, and
// finished events onto it
func WithEvents(events *Events) Option {
	return func(e *Executor) {
		e.events = events
	}
}

// WithLogger attaches a structured logger for run diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// New validates the flow and builds an executor for it. Every schema,
// edge, cycle, shape, and node-type violation found is aggregated into
// the returned error; an executor is only built from a fully valid flow
func New(
	f *api.Flow, registry *node.Registry, opts ...Option,
) (*Executor, error) {
	if err := Validate(f, registry); err != nil {
		return nil, err
	}

	g, err := flow.NewGraph(f)
	if err != nil {
		return nil, err
	}

	e := &Executor{
		graph:    g,
		caps:     make(map[api.NodeID]node.Capability, len(f.Nodes)),
		logger:   slog.Default(),
		registry: registry,
	}
	for _, opt := range opts {
		opt(e)
	}

	var errs []error
	for i := range f.Nodes {
		n := &f.Nodes[i]
		c, err := registry.New(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		e.caps[n.ID] = c
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return e, nil
}

// Validate runs every structural check against the flow: schema
// aggregation, dangling-edge and cycle detection, graph-shape rules, the
// node-type check against the registry, and the registry's own totality
// self-check. All violations aggregate; validation of the same flow is
// idempotent
func Validate(f *api.Flow, registry *node.Registry) error {
	var errs []error

	if err := registry.Check(api.BuiltinNodeTypes); err != nil {
		errs = append(errs, err)
	}
	if err := f.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, n := range f.Nodes {
		if n.Type != "" && !registry.Known(n.Type) {
			errs = append(errs, fmt.Errorf(
				"%w: %s (node %s)", node.ErrUnknownNodeType, n.Type, n.ID,
			))
		}
	}
	if err := flow.ValidateEdges(f); err != nil {
		errs = append(errs, err)
	}
	if err := flow.ValidateShape(f); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Graph exposes the read-only runtime view of the flow
func (e *Executor) Graph() *flow.Graph {
	return e.graph
}
