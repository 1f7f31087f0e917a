// Package service defines the pluggable service ports that node
// capabilities depend on, along with their production adapters and
// deterministic in-memory implementations used for testing and offline
// operation
package service
