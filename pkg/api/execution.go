package api

import (
	"errors"
	"fmt"
	"time"
)

type (
	// RunStatus is the terminal classification of a single execution
	RunStatus string

	// LogLevel classifies a log entry emitted during a run
	LogLevel string

	// LogEntry is one line of the run log, attributed to the node that
	// emitted it
	LogEntry struct {
		Time    time.Time `json:"time"`
		NodeID  NodeID    `json:"node_id"`
		Level   LogLevel  `json:"level"`
		Message string    `json:"message"`
	}

	// ExecutionStep records one node's single execution within a run:
	// the input handed to the node before any mutation, the output it
	// produced, its timing, and the log entries it emitted. The step
	// trace is append-only and records every node actually visited
	// regardless of how the run terminates
	ExecutionStep struct {
		Input     any           `json:"input"`
		Output    any           `json:"output"`
		NodeID    NodeID        `json:"node_id"`
		NodeType  NodeType      `json:"node_type"`
		StartedAt time.Time     `json:"started_at"`
		EndedAt   time.Time     `json:"ended_at"`
		Logs      []LogEntry    `json:"logs,omitempty"`
		Duration  time.Duration `json:"duration"`
	}

	// ExecutionResult is the sole output of a run, created once per
	// Execute call, finalized exactly once, and immutable after
	ExecutionResult struct {
		Output    any             `json:"output"`
		RunID     RunID           `json:"run_id"`
		FlowID    FlowID          `json:"flow_id"`
		Status    RunStatus       `json:"status"`
		Error     string          `json:"error,omitempty"`
		Logs      []LogEntry      `json:"logs"`
		Steps     []ExecutionStep `json:"steps"`
		StartedAt time.Time       `json:"started_at"`
		EndedAt   time.Time       `json:"ended_at"`
	}

	// Options tunes a single Execute call. Zero values fall back to the
	// documented defaults
	Options struct {
		Vault        Args          `json:"vault,omitempty"`
		InitialState Args          `json:"initial_state,omitempty"`
		MaxSteps     int           `json:"max_steps,omitempty"`
		Timeout      time.Duration `json:"timeout,omitempty"`
	}

	// NodeError wraps a node-execution failure with the failing node's
	// identity so upstream renderers can attribute the cause
	NodeError struct {
		Err    error
		NodeID NodeID
	}
)

const (
	// RunSuccess means an exit node was reached
	RunSuccess RunStatus = "success"

	// RunFailed means a node failed or the step budget was exhausted
	RunFailed RunStatus = "failed"

	// RunTimedOut means the wall-clock deadline passed at a step boundary
	RunTimedOut RunStatus = "timeout"

	// RunIncomplete means a non-exit node had no successor to follow
	RunIncomplete RunStatus = "incomplete"
)

const (
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

const (
	// DefaultMaxSteps bounds the traversal loop when Options omit it
	DefaultMaxSteps = 100

	// DefaultTimeout bounds a run's wall clock when Options omit it
	DefaultTimeout = 300_000 * time.Millisecond
)

var (
	ErrMaxSteps     = errors.New("maximum steps reached")
	ErrRunTimeout   = errors.New("execution timed out")
	ErrNoSuccessor  = errors.New("no declared successor")
	ErrInvalidSteps = errors.New("max steps must be positive")
)

// StepBudget resolves the effective step budget for this options set
func (o *Options) StepBudget() int {
	if o.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return o.MaxSteps
}

// Deadline resolves the effective run deadline relative to now
func (o *Options) Deadline(now time.Time) time.Time {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return now.Add(timeout)
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %s", e.NodeID, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }
