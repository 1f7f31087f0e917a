package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flowcore/engine/internal/node"
	"github.com/flowcore/engine/pkg/api"
	"github.com/flowcore/engine/pkg/log"
)

// Execute runs the flow against the input, bounded by the step budget and
// wall-clock deadline from the options. Every run outcome resolves into
// the returned result; Execute never reports a run through an error
func (e *Executor) Execute(
	ctx context.Context, input any, opts api.Options,
) *api.ExecutionResult {
	started := time.Now()
	res := &api.ExecutionResult{
		RunID:     api.RunID(uuid.NewString()),
		FlowID:    e.graph.Flow().ID,
		StartedAt: started,
	}

	if opts.MaxSteps < 0 {
		return e.finalize(res, api.RunFailed, nil, api.ErrInvalidSteps)
	}

	run := &node.RunContext{
		Input:   input,
		State:   api.Args{}.Apply(opts.InitialState),
		Memory:  api.Args{},
		Vault:   opts.Vault,
		Secrets: e.registry.Services().Secrets,
	}
	if run.State == nil {
		run.State = api.Args{}
	}

	e.publish(api.RunEvent{
		Type:   api.EventTypeRunStarted,
		RunID:  res.RunID,
		FlowID: res.FlowID,
		Time:   started,
	})

	deadline := opts.Deadline(started)
	budget := opts.StepBudget()
	current := e.graph.Entry()

	for range budget {
		if time.Now().After(deadline) {
			return e.finalize(res, api.RunTimedOut, run.Input,
				api.ErrRunTimeout)
		}

		n, ok := e.graph.Node(current)
		if !ok {
			// unreachable given construction-time validation
			return e.finalize(res, api.RunFailed, run.Input,
				&api.NodeError{NodeID: current, Err: ErrNoCapability})
		}

		result, step, err := e.step(ctx, n, run)
		res.Steps = append(res.Steps, *step)
		res.Logs = append(res.Logs, step.Logs...)

		e.publish(api.RunEvent{
			Type:     api.EventTypeNodeExecuted,
			RunID:    res.RunID,
			FlowID:   res.FlowID,
			NodeID:   n.ID,
			NodeType: n.Type,
			Step:     step,
			Time:     step.EndedAt,
		})

		if err != nil {
			return e.finalize(res, api.RunFailed, run.Input,
				&api.NodeError{NodeID: n.ID, Err: err})
		}

		run.Input = result.Output
		if len(result.Patch) > 0 {
			run.State = run.State.Apply(result.Patch)
		}
		if result.Fragments != nil {
			run.Fragments = result.Fragments
		}

		if n.Type == api.NodeExit {
			return e.finalize(res, api.RunSuccess, result.Output, nil)
		}

		next, ok := e.next(n.ID, result)
		if !ok {
			return e.finalize(res, api.RunIncomplete, run.Input,
				api.ErrNoSuccessor)
		}
		current = next
	}

	return e.finalize(res, api.RunFailed, run.Input, api.ErrMaxSteps)
}

// step executes one node, recording its trace entry. The entry captures
// the input before any mutation
func (e *Executor) step(
	ctx context.Context, n *api.Node, run *node.RunContext,
) (*node.Result, *api.ExecutionStep, error) {
	step := &api.ExecutionStep{
		NodeID:    n.ID,
		NodeType:  n.Type,
		Input:     run.Input,
		StartedAt: time.Now(),
	}

	result, err := e.caps[n.ID].Execute(ctx, run)
	step.EndedAt = time.Now()
	step.Duration = step.EndedAt.Sub(step.StartedAt)

	if err != nil {
		step.Logs = append(step.Logs, api.LogEntry{
			Time:    step.EndedAt,
			NodeID:  n.ID,
			Level:   api.LogError,
			Message: err.Error(),
		})
		return nil, step, err
	}

	step.Output = result.Output
	step.Logs = result.Logs
	return result, step, nil
}

// next resolves the node to visit after a step: the capability's explicit
// override first, then the outgoing edge matching its handle, then the
// first declared successor
func (e *Executor) next(
	id api.NodeID, result *node.Result,
) (api.NodeID, bool) {
	if result.Next != "" {
		return result.Next, true
	}
	if result.Handle != "" {
		if target, ok := e.graph.SuccessorFor(id, result.Handle); ok {
			return target, true
		}
	}
	return e.graph.FirstSuccessor(id)
}

func (e *Executor) finalize(
	res *api.ExecutionResult, status api.RunStatus, output any, err error,
) *api.ExecutionResult {
	res.Status = status
	res.Output = output
	res.EndedAt = time.Now()
	if err != nil {
		res.Error = err.Error()
	}

	e.logger.Info("run finished",
		log.RunID(res.RunID),
		log.FlowID(res.FlowID),
		log.Status(string(status)),
		slog.Int("steps", len(res.Steps)),
	)

	e.publish(api.RunEvent{
		Type:   api.EventTypeRunFinished,
		RunID:  res.RunID,
		FlowID: res.FlowID,
		Result: res,
		Time:   res.EndedAt,
	})
	return res
}

func (e *Executor) publish(ev api.RunEvent) {
	if e.events == nil {
		return
	}
	e.events.Publish(ev)
}
