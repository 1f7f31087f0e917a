package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type (
	// ToolFunc is a single tool implementation
	ToolFunc func(ctx context.Context, input any) (any, error)

	// ToolSet is a registry of named deterministic tools
	ToolSet struct {
		tools map[string]ToolFunc
	}
)

// NewToolSet creates a tool set populated with the builtin tools
func NewToolSet() *ToolSet {
	t := &ToolSet{
		tools: map[string]ToolFunc{},
	}
	t.Register("echo", echoTool)
	t.Register("uppercase", uppercaseTool)
	t.Register("lowercase", lowercaseTool)
	t.Register("trim", trimTool)
	t.Register("length", lengthTool)
	t.Register("json_parse", jsonParseTool)
	return t
}

// Register adds or replaces a named tool
func (t *ToolSet) Register(name string, fn ToolFunc) {
	t.tools[name] = fn
}

// Invoke runs the named tool against the input
func (t *ToolSet) Invoke(
	ctx context.Context, tool string, input any,
) (any, error) {
	fn, ok := t.tools[tool]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}
	return fn(ctx, input)
}

func echoTool(_ context.Context, input any) (any, error) {
	return input, nil
}

func uppercaseTool(_ context.Context, input any) (any, error) {
	return strings.ToUpper(inputString(input)), nil
}

func lowercaseTool(_ context.Context, input any) (any, error) {
	return strings.ToLower(inputString(input)), nil
}

func trimTool(_ context.Context, input any) (any, error) {
	return strings.TrimSpace(inputString(input)), nil
}

func lengthTool(_ context.Context, input any) (any, error) {
	switch v := input.(type) {
	case string:
		return len(v), nil
	case []any:
		return len(v), nil
	case map[string]any:
		return len(v), nil
	case nil:
		return 0, nil
	default:
		return len(inputString(input)), nil
	}
}

func jsonParseTool(_ context.Context, input any) (any, error) {
	var out any
	if err := json.Unmarshal([]byte(inputString(input)), &out); err != nil {
		return nil, fmt.Errorf("json_parse: %w", err)
	}
	return out, nil
}

func inputString(input any) string {
	if s, ok := input.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", input)
}
