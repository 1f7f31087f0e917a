package api

import (
	"regexp"
	"strings"
)

type (
	// FlowID is a unique identifier for a flow
	FlowID string

	// NodeID is a unique identifier for a node within a flow
	NodeID string

	// EdgeID is a unique identifier for an edge within a flow
	EdgeID string

	// RunID is a unique identifier for a single execution of a flow
	RunID string

	// Handle disambiguates multiple outgoing or incoming connection points
	// on a node, such as the true/false branches of a condition
	Handle string
)

const (
	// HandleTrue labels the edge taken when a condition evaluates true
	HandleTrue Handle = "true"

	// HandleFalse labels the edge taken when a condition evaluates false
	HandleFalse Handle = "false"
)

// InvalidIDChars matches characters not permitted in flow and node IDs.
// Valid characters are: letters, digits, underscore, dot, hyphen, plus,
// space
var InvalidIDChars = regexp.MustCompile(`[^a-zA-Z0-9_.\-+ ]`)

// SanitizeID lowercases an ID, removes invalid characters, replaces spaces
// with hyphens, and trims leading and trailing hyphens
func SanitizeID[T ~string](id T) T {
	lower := strings.ToLower(string(id))
	sanitized := InvalidIDChars.ReplaceAllString(lower, "")
	sanitized = strings.ReplaceAll(sanitized, " ", "-")
	return T(strings.Trim(sanitized, "-"))
}
