// Package lua implements the script configuration dialect.
//
// A configuration file is a Lua chunk executed in a fresh, isolated state.
// Every global the chunk binds becomes a top-level key:
//
//	x = 1 ; b = { foo = x + 2 }
//	hosts = { "a.example.com", "b.example.com" }
//	port = function() return 8000 + x end
//
// Only the base, table, string and math libraries are available, and the
// file or module loading functions are removed. Tables with keys 1..n become
// []any, other tables become nested mappings sorted by key, integral numbers
// become int64, and functions become Function values that remain callable.
//
// The dialect is read-only: a script cannot be regenerated from its results.
// Syntax errors are reported as *parser.SyntaxError with line and column.
package lua
