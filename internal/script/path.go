package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/flowcore/engine/internal/util"
	"github.com/flowcore/engine/pkg/api"
)

type (
	// PathEnv evaluates path predicates. A path predicate is a gjson
	// lookup against the document, with truthy coercion of the result.
	// The literals true and false short-circuit, and a leading "!"
	// negates the lookup
	PathEnv struct {
		scripts *util.LRUCache[*CompiledPath]
	}

	// CompiledPath represents a parsed path predicate
	CompiledPath struct {
		path    string
		literal *bool
		negate  bool
	}
)

const pathCacheSize = 256

var (
	ErrPathBadCompiledType = errors.New("expected *CompiledPath")
	ErrPathEmpty           = errors.New("empty path expression")
)

func NewPathEnv() *PathEnv {
	return &PathEnv{
		scripts: util.NewLRUCache[*CompiledPath](pathCacheSize),
	}
}

// Validate checks if a path predicate parses
func (e *PathEnv) Validate(condition string) error {
	_, err := parsePath(condition)
	return err
}

// Compile parses a path predicate, caching the parsed form
func (e *PathEnv) Compile(condition string) (Compiled, error) {
	return e.scripts.Get(hashScript(condition),
		func() (*CompiledPath, error) {
			return parsePath(condition)
		},
	)
}

// EvaluatePredicate resolves a compiled path against the document and
// coerces the result to a boolean
func (e *PathEnv) EvaluatePredicate(c Compiled, doc api.Args) (bool, error) {
	path, ok := c.(*CompiledPath)
	if !ok {
		return false, fmt.Errorf("%w, got %T", ErrPathBadCompiledType, c)
	}

	if path.literal != nil {
		return *path.literal, nil
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return false, err
	}

	result := pathTruthy(gjson.GetBytes(encoded, path.path))
	if path.negate {
		return !result, nil
	}
	return result, nil
}

func parsePath(condition string) (*CompiledPath, error) {
	expr := strings.TrimSpace(condition)
	if expr == "" {
		return nil, ErrPathEmpty
	}

	switch expr {
	case "true":
		return &CompiledPath{literal: boolPtr(true)}, nil
	case "false":
		return &CompiledPath{literal: boolPtr(false)}, nil
	}

	negate := false
	if rest, ok := strings.CutPrefix(expr, "!"); ok {
		negate = true
		expr = strings.TrimSpace(rest)
		if expr == "" {
			return nil, ErrPathEmpty
		}
	}

	return &CompiledPath{path: expr, negate: negate}, nil
}

func pathTruthy(res gjson.Result) bool {
	switch res.Type {
	case gjson.False, gjson.Null:
		return false
	case gjson.Number:
		return res.Num != 0
	case gjson.String:
		return res.Str != "" && res.Str != "false"
	case gjson.True:
		return true
	case gjson.JSON:
		return true
	default:
		return res.Exists()
	}
}

func boolPtr(b bool) *bool {
	return &b
}
