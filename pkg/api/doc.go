// Package api defines the core data types for the flow engine
//
// This package contains all the shared types used across the engine,
// including the declarative flow graph (nodes, edges, metadata), typed
// per-node configuration, execution options, run events, and the
// execution result consumed by upstream renderers
package api
