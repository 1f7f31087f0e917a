// Package script provides the predicate evaluation environments used by
// condition nodes
//
// A predicate sees two named values: input (the value flowing through the
// run) and state (the accumulated state mapping). Three languages ship
// with the engine: lua (sandboxed, state-pooled), ale (lambda
// compilation), and path (a gjson lookup with truthy semantics, the
// default for plain expression strings). Compiled predicates are cached
// per script hash
package script
