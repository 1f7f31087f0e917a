// Package util provides common utility data structures
//
// This package includes the generic set implementation used for node type
// enumerations, graph bookkeeping, and connection tracking
package util
