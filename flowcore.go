// Package engine implements the flowcore flow-graph execution engine
package engine

const (
	// Name is the service name reported in logs and health responses
	Name = "flowcore-engine"

	// Version is the engine release version
	Version = "0.1.0"
)
