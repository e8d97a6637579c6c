//go:build cfg_nolua

package backend

// LuaAvailable reports whether the script dialect is built in.
const LuaAvailable = false

// LuaDialect returns a placeholder; the binary was built with cfg_nolua.
func LuaDialect(map[string]any) Dialect {
	return Unavailable("lua", "built with cfg_nolua")
}
