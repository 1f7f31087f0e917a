// Package engine implements the flow executor: validation at
// construction, one capability instance per node, and the bounded
// step-wise traversal loop that turns a flow and an input into an
// ExecutionResult
package engine
