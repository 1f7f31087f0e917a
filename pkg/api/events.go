package api

import "time"

type (
	// EventType classifies a run event published while a flow executes
	EventType string

	// RunEvent is the envelope streamed to subscribers as a run
	// progresses. Step is set for node events; Result is set for the
	// terminal event
	RunEvent struct {
		Step     *ExecutionStep   `json:"step,omitempty"`
		Result   *ExecutionResult `json:"result,omitempty"`
		Type     EventType        `json:"type"`
		RunID    RunID            `json:"run_id"`
		FlowID   FlowID           `json:"flow_id"`
		NodeID   NodeID           `json:"node_id,omitempty"`
		NodeType NodeType         `json:"node_type,omitempty"`
		Time     time.Time        `json:"time"`
	}
)

const (
	// EventTypeRunStarted is published when a run begins
	EventTypeRunStarted EventType = "run_started"

	// EventTypeNodeExecuted is published after each node executes, with
	// the recorded step attached
	EventTypeNodeExecuted EventType = "node_executed"

	// EventTypeRunFinished is published once per run with the finalized
	// result attached, regardless of terminal status
	EventTypeRunFinished EventType = "run_finished"
)
