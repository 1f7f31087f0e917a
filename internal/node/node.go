package node

import (
	"context"
	"time"

	"github.com/flowcore/engine/internal/service"
	"github.com/flowcore/engine/pkg/api"
)

type (
	// Capability is one executable node variant. Implementations must be
	// stateless across invocations: all per-run state lives in the
	// RunContext, and state changes travel back through the Result patch
	Capability interface {
		Execute(ctx context.Context, run *RunContext) (*Result, error)
	}

	// RunContext carries the mutable state of a single run past a node.
	// Nodes read it; only the executor writes it between steps
	RunContext struct {
		Input     any
		State     api.Args
		Memory    api.Args
		Vault     api.Args
		Secrets   service.Secrets
		Fragments []string
	}

	// Result is the outcome of one node execution. Next overrides forward
	// traversal when set; otherwise Handle selects among labeled outgoing
	// edges, and an empty Handle follows the first declared successor.
	// Patch is shallow-merged into run state by the executor
	Result struct {
		Output    any
		Patch     api.Args
		Fragments []string
		Logs      []api.LogEntry
		Next      api.NodeID
		Handle    api.Handle
	}
)

// Secret looks up a read-only secret for the run. The caller-supplied
// vault takes priority; keys absent from it resolve through the
// configured secret source
func (r *RunContext) Secret(ctx context.Context, key string) (string, bool) {
	if value, ok := r.Vault[key].(string); ok {
		return value, true
	}
	if r.Secrets == nil {
		return "", false
	}
	value, err := r.Secrets.Secret(ctx, key)
	if err != nil {
		return "", false
	}
	return value, true
}

// Doc returns the predicate document view of the run, binding input and
// state under their well-known names
func (r *RunContext) Doc() api.Args {
	return api.Args{
		"input": r.Input,
		"state": r.State,
	}
}

func logEntry(id api.NodeID, level api.LogLevel, msg string) api.LogEntry {
	return api.LogEntry{
		Time:    time.Now(),
		NodeID:  id,
		Level:   level,
		Message: msg,
	}
}

func infoLog(id api.NodeID, msg string) []api.LogEntry {
	return []api.LogEntry{logEntry(id, api.LogInfo, msg)}
}
