// Package node implements the capability abstraction behind flow nodes.
// Each node type maps to a Capability built once per Executor; the
// Registry resolves type tags to factories, so new variants plug in
// without executor changes
package node
