// Package flow provides structural validation for declarative flows and
// the read-only graph view the executor walks
//
// Validation is split into independent, composable stages layered above
// the schema-shape check on api.Flow: edge resolution with cycle
// detection, and graph-shape invariants (entry/exit/reachability). Each
// stage enumerates every violation it finds rather than stopping at the
// first, and all stages run before an executor is constructed
package flow
