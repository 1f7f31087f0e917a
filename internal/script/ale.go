package script

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kode4food/ale"
	"github.com/kode4food/ale/core/bootstrap"
	"github.com/kode4food/ale/data"
	"github.com/kode4food/ale/env"
	"github.com/kode4food/ale/eval"

	"github.com/flowcore/engine/pkg/api"
)

// AleEnv provides an Ale predicate environment. Predicates are compiled
// into anonymous lambdas over the document values
type AleEnv struct {
	env     *env.Environment
	scripts sync.Map
}

const aleLambdaTemplate = "(lambda (%s) %s)"

var (
	ErrAleBadCompiledType = errors.New("expected data.Procedure")
	ErrAleNotProcedure    = errors.New("not a procedure")
	ErrAleCompile         = errors.New("script compile error")
	ErrAleCall            = errors.New("error calling procedure")
)

func NewAleEnv() *AleEnv {
	e := env.NewEnvironment()
	bootstrap.Into(e)
	return &AleEnv{
		env: e,
	}
}

// Validate checks if an Ale predicate compiles without evaluating it
func (e *AleEnv) Validate(condition string) error {
	_, err := e.compile(condition)
	return err
}

// Compile compiles an Ale predicate, returning a cached procedure when the
// same condition was compiled before
func (e *AleEnv) Compile(condition string) (Compiled, error) {
	key := hashScript(condition)

	if val, ok := e.scripts.Load(key); ok {
		return val.(data.Procedure), nil
	}

	proc, err := e.compile(condition)
	if err == nil {
		e.scripts.Store(key, proc)
	}
	return proc, err
}

// EvaluatePredicate calls a compiled Ale predicate with the document
// values and returns its boolean result
func (e *AleEnv) EvaluatePredicate(c Compiled, doc api.Args) (bool, error) {
	proc, ok := c.(data.Procedure)
	if !ok {
		return false, fmt.Errorf("%w, got %T", ErrAleBadCompiledType, c)
	}

	args := make(data.Vector, 0, len(predicateArgs))
	for _, name := range predicateArgs {
		args = append(args, getAleArgValue(doc, name))
	}

	result, err := catchPanic(ErrAleCall,
		func() (ale.Value, error) {
			return proc.Call(args...), nil
		},
	)
	if err != nil {
		return false, err
	}
	return result != data.False, nil
}

func (e *AleEnv) compile(condition string) (data.Procedure, error) {
	src := fmt.Sprintf(
		aleLambdaTemplate, strings.Join(predicateArgs[:], " "), condition,
	)

	return catchPanic(ErrAleCompile,
		func() (data.Procedure, error) {
			ns := e.env.GetAnonymous()
			res, err := eval.String(ns, data.String(src))
			if err != nil {
				return nil, err
			}

			proc, ok := res.(data.Procedure)
			if !ok {
				return nil, fmt.Errorf("%w, got: %T", ErrAleNotProcedure, res)
			}
			return proc, nil
		},
	)
}

func getAleArgValue(doc api.Args, argName string) ale.Value {
	value, ok := doc[argName]
	if !ok {
		return data.Null
	}
	return jsonToAle(value)
}

func jsonToAle(value any) ale.Value {
	switch v := value.(type) {
	case string:
		return data.String(v)
	case bool:
		return data.Bool(v)
	case int:
		return data.Integer(v)
	case int64:
		return data.Integer(v)
	case float64:
		return data.Float(v)
	case []any:
		return jsonArrayToAle(v)
	case map[string]any:
		return jsonMapToAle(v)
	case api.Args:
		return jsonMapToAle(v)
	case nil:
		return data.Null
	default:
		return data.String(fmt.Sprintf("%v", v))
	}
}

func jsonArrayToAle(arr []any) data.Vector {
	vec := make(data.Vector, len(arr))
	for i, item := range arr {
		vec[i] = jsonToAle(item)
	}
	return vec
}

func jsonMapToAle(m map[string]any) *data.Object {
	obj := data.NewObject()
	for k, val := range m {
		pair := data.NewCons(data.Keyword(k), jsonToAle(val))
		obj = obj.Put(pair).(*data.Object)
	}
	return obj
}

func catchPanic[T any](baseErr error, fn func() (T, error)) (res T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(error)
		if ok {
			err = e
			return
		}
		err = fmt.Errorf("%w: %v", baseErr, r)
	}()
	return fn()
}
