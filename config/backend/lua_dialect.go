//go:build !cfg_nolua

package backend

import (
	"github.com/0xalexb/hjarta-cfg/config/mapping"
	luaparser "github.com/0xalexb/hjarta-cfg/config/parser/lua"
)

// LuaAvailable reports whether the script dialect is built in.
const LuaAvailable = true

// LuaDialect returns the read-only script dialect. Globals in seed are defined
// before each file runs and are reported alongside the file's own bindings.
func LuaDialect(seed map[string]any) Dialect {
	var opts []luaparser.Option
	if len(seed) > 0 {
		opts = append(opts, luaparser.WithGlobals(seed))
	}

	load := func(filename string) (*mapping.Map, error) {
		return luaparser.Load(filename, opts...)
	}

	return Dialect{Name: luaparser.Name, New: NewCustom(luaparser.Name, load, nil)}
}
