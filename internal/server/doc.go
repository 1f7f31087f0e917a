// Package server implements the HTTP surface of the flow engine
//
// It exposes flow validation, synchronous execution, archived run lookup,
// and a WebSocket stream of run events
package server
