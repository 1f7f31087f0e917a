package script

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/flowcore/engine/pkg/api"
)

type (
	// Registry manages predicate environments for different languages
	Registry struct {
		envs map[string]Environment
	}

	// Environment defines the interface for predicate environments
	Environment interface {
		// Validate checks if a predicate is syntactically valid
		Validate(condition string) error

		// Compile compiles a predicate and returns the compiled form
		Compile(condition string) (Compiled, error)

		// EvaluatePredicate evaluates a compiled predicate against the
		// named document values (input, state)
		EvaluatePredicate(c Compiled, doc api.Args) (bool, error)
	}

	// Compiled represents a compiled predicate for any supported language
	Compiled any
)

const (
	LangLua  = "lua"
	LangAle  = "ale"
	LangPath = "path"
)

// predicateArgs are the names a predicate sees, in binding order
var predicateArgs = [...]string{"input", "state"}

var ErrUnsupportedLanguage = errors.New("unsupported predicate language")

// NewRegistry creates a registry with the lua, ale, and path predicate
// environments
func NewRegistry() *Registry {
	return &Registry{
		envs: map[string]Environment{
			LangLua:  NewLuaEnv(),
			LangAle:  NewAleEnv(),
			LangPath: NewPathEnv(),
		},
	}
}

// Register adds or replaces the environment for a language
func (r *Registry) Register(language string, env Environment) {
	r.envs[language] = env
}

// Get returns the predicate environment for the given language
func (r *Registry) Get(language string) (Environment, error) {
	env, ok := r.envs[language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}
	return env, nil
}

// Compile compiles a condition in the given language
func (r *Registry) Compile(language, condition string) (Compiled, error) {
	env, err := r.Get(language)
	if err != nil {
		return nil, err
	}
	return env.Compile(condition)
}

func hashScript(script string) string {
	hash := sha256.Sum256([]byte(script))
	return hex.EncodeToString(hash[:8])
}
