package script

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Shopify/go-lua"

	"github.com/flowcore/engine/pkg/api"
)

type (
	// LuaEnv provides a sandboxed Lua predicate environment with state
	// pooling
	LuaEnv struct {
		statePool chan *lua.State
		scripts   sync.Map
	}

	// CompiledLua represents a compiled Lua predicate
	CompiledLua struct {
		bytecode []byte
		argNames []string
	}
)

const (
	luaStatePoolSize    = 10
	luaGlobalTableIndex = -2
	luaArrayTableIndex  = -3
	luaMapTableIndex    = -3
	luaArgLocalTemplate = "local %s = select(%d, ...)"
	luaScriptSeparator  = "\n"
	luaGlobalTableName  = "_G"
	luaReturnPrefix     = "return "
)

var (
	ErrLuaBadCompiledType = errors.New("expected *CompiledLua")
	ErrLuaLoad            = errors.New("lua load error")
	ErrLuaExecution       = errors.New("lua execution error")
)

var luaExclude = [...]string{
	"io", "os", "debug", "package", "require", "dofile", "loadfile", "load",
}

// NewLuaEnv creates a new Lua predicate environment with a state pool for
// efficient reuse across evaluations
func NewLuaEnv() *LuaEnv {
	return &LuaEnv{
		statePool: make(chan *lua.State, luaStatePoolSize),
	}
}

// Validate checks if a Lua predicate is syntactically correct without
// running it
func (e *LuaEnv) Validate(condition string) error {
	_, err := e.compile(condition)
	return err
}

// Compile compiles a Lua predicate, returning a cached form when the same
// condition was compiled before
func (e *LuaEnv) Compile(condition string) (Compiled, error) {
	key := hashScript(condition)

	if val, ok := e.scripts.Load(key); ok {
		return val.(*CompiledLua), nil
	}

	c, err := e.compile(condition)
	if err == nil {
		e.scripts.Store(key, c)
	}
	return c, err
}

// EvaluatePredicate runs a compiled Lua predicate against the document and
// returns its boolean result
func (e *LuaEnv) EvaluatePredicate(c Compiled, doc api.Args) (bool, error) {
	script, ok := c.(*CompiledLua)
	if !ok {
		return false, fmt.Errorf("%w, got %T", ErrLuaBadCompiledType, c)
	}

	L := e.getState()
	defer e.returnState(L)

	e.setupSandbox(L)

	if err := L.Load(bytes.NewReader(script.bytecode), "chunk", "b"); err != nil {
		return false, fmt.Errorf("%w: %w", ErrLuaLoad, err)
	}

	for _, name := range script.argNames {
		pushLuaArg(L, doc, name)
	}

	if err := L.ProtectedCall(len(script.argNames), 1, 0); err != nil {
		return false, fmt.Errorf("%w: %w", ErrLuaExecution, err)
	}

	result := L.ToBoolean(-1)
	L.Pop(1)

	return result, nil
}

func (e *LuaEnv) compile(condition string) (*CompiledLua, error) {
	body := condition
	if !strings.Contains(body, "return") {
		body = luaReturnPrefix + body
	}

	argLocals := make([]string, len(predicateArgs))
	for i, name := range predicateArgs {
		argLocals[i] = fmt.Sprintf(luaArgLocalTemplate, name, i+1)
	}

	src := strings.Join([]string{
		strings.Join(argLocals, luaScriptSeparator), body,
	}, luaScriptSeparator)

	L := lua.NewState()

	e.setupSandbox(L)

	if err := lua.LoadString(L, src); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := L.Dump(&buf); err != nil {
		return nil, err
	}

	return &CompiledLua{
		bytecode: buf.Bytes(),
		argNames: predicateArgs[:],
	}, nil
}

func (e *LuaEnv) setupSandbox(L *lua.State) {
	lua.OpenLibraries(L)
	L.Global(luaGlobalTableName)
	for _, name := range luaExclude {
		L.PushNil()
		L.SetField(luaGlobalTableIndex, name)
	}
	L.Pop(1)
}

func (e *LuaEnv) getState() *lua.State {
	select {
	case L := <-e.statePool:
		return L
	default:
		return lua.NewState()
	}
}

func (e *LuaEnv) returnState(L *lua.State) {
	L.SetTop(0)

	select {
	case e.statePool <- L:
	default:
	}
}

func pushLuaArg(L *lua.State, doc api.Args, argName string) {
	if value, ok := doc[argName]; ok {
		goToLua(L, value)
		return
	}
	L.PushNil()
}

func goToLua(L *lua.State, value any) {
	switch v := value.(type) {
	case string:
		L.PushString(v)
	case bool:
		L.PushBoolean(v)
	case int:
		L.PushInteger(v)
	case int64:
		L.PushInteger(int(v))
	case float64:
		L.PushNumber(v)
	case []any:
		pushLuaArray(L, v)
	case map[string]any:
		pushLuaMap(L, v)
	case api.Args:
		pushLuaMap(L, v)
	case nil:
		L.PushNil()
	default:
		L.PushString(fmt.Sprintf("%v", v))
	}
}

func pushLuaArray(L *lua.State, arr []any) {
	L.CreateTable(len(arr), 0)
	for i, item := range arr {
		L.PushInteger(i + 1)
		goToLua(L, item)
		L.SetTable(luaArrayTableIndex)
	}
}

func pushLuaMap(L *lua.State, m map[string]any) {
	L.CreateTable(0, len(m))
	for k, val := range m {
		L.PushString(k)
		goToLua(L, val)
		L.SetTable(luaMapTableIndex)
	}
}
