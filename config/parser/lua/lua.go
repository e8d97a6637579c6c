package lua

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/0xalexb/hjarta-cfg/config/fetcher/file"
	"github.com/0xalexb/hjarta-cfg/config/mapping"
	"github.com/0xalexb/hjarta-cfg/config/parser"
)

// Name identifies this dialect.
const Name = "lua"

// Function is a script function that stays callable after the file is loaded.
// Arguments and results use the same value model as the loaded mapping.
type Function func(args ...any) ([]any, error)

// Option configures how a script is evaluated.
type Option func(*options)

type options struct {
	globals map[string]any
}

// WithGlobals seeds the script namespace with values before it runs.
// Seeded names are reported as bindings unless the script removes them.
func WithGlobals(globals map[string]any) Option {
	return func(o *options) {
		o.globals = globals
	}
}

// Load reads filename and evaluates it as a Lua script.
func Load(filename string, opts ...Option) (*mapping.Map, error) {
	data, err := file.Read(filename)
	if err != nil {
		return nil, err
	}

	return Parse(filename, data, opts...)
}

// Parse evaluates data in a fresh sandboxed state and returns every global the
// script bound, excluding untouched built-ins.
func Parse(filename string, data []byte, opts ...Option) (*mapping.Map, error) {
	var cfg options
	for _, apply := range opts {
		apply(&cfg)
	}

	chunk, err := parse.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, syntaxError(filename, err)
	}

	proto, err := lua.Compile(chunk, filename)
	if err != nil {
		return nil, &parser.SyntaxError{Dialect: Name, Filename: filename, Message: err.Error(), Err: err}
	}

	L, err := newState()
	if err != nil {
		return nil, fmt.Errorf("creating lua state: %w", err)
	}

	builtins := snapshotGlobals(L)

	conv := &converter{L: L}

	names := make([]string, 0, len(cfg.globals))
	for name := range cfg.globals {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		L.SetGlobal(name, conv.toLua(cfg.globals[name]))
	}

	strictGlobals(L)

	L.Push(L.NewFunctionFromProto(proto))

	err = L.PCall(0, lua.MultRet, nil)
	if err != nil {
		L.Close()

		return nil, &parser.SyntaxError{
			Dialect:  Name,
			Filename: filename,
			Message:  "runtime error: " + err.Error(),
			Err:      err,
		}
	}

	result := conv.bindings(builtins)

	if !conv.keepsState {
		L.Close()
	}

	return result, nil
}

func syntaxError(filename string, err error) error {
	syntaxErr := &parser.SyntaxError{Dialect: Name, Filename: filename, Message: err.Error(), Err: err}

	var parseErr *parse.Error
	if errors.As(err, &parseErr) {
		syntaxErr.Message = parseErr.Message

		if parseErr.Pos.Line > 0 {
			syntaxErr.Line = parseErr.Pos.Line
			syntaxErr.Column = parseErr.Pos.Column
		}
	}

	return syntaxErr
}

// newState creates a Lua state with only the safe standard libraries.
func newState() (*lua.LState, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	libs := []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}

	for _, lib := range libs {
		err := L.CallByParam(lua.P{Fn: L.NewFunction(lib.open), NRet: 0, Protect: true}, lua.LString(lib.name))
		if err != nil {
			L.Close()

			return nil, fmt.Errorf("opening library %q: %w", lib.name, err)
		}
	}

	// No file or module loading from configuration scripts.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}

	return L, nil
}

// strictGlobals makes reading an undefined global a runtime error instead of nil.
func strictGlobals(L *lua.LState) {
	meta := L.NewTable()
	L.SetField(meta, "__index", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("undefined variable %q", L.CheckString(2))

		return 0
	}))
	L.SetMetatable(L.G.Global, meta)
}

func snapshotGlobals(L *lua.LState) map[string]lua.LValue {
	builtins := make(map[string]lua.LValue)

	L.G.Global.ForEach(func(k, v lua.LValue) {
		if key, ok := k.(lua.LString); ok {
			builtins[string(key)] = v
		}
	})

	return builtins
}
