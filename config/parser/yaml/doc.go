// Package yaml implements the structured-mapping configuration dialect.
//
// This package uses github.com/goccy/go-yaml with ordered maps, so a mapping
// loaded from a file and saved back keeps its original key order. The document
// root must be a mapping; anything else is reported as a *parser.SyntaxError.
//
// Usage:
//
//	m, err := yaml.Load("/etc/myapp.rc")
//	...
//	err = yaml.Save("/etc/myapp.rc", m)
//
// Value Conversion:
//   - mappings    -> *mapping.Map
//   - sequences   -> []any
//   - integers    -> int64 (uint64 only when out of int64 range)
//   - empty file  -> empty mapping
//   - keys        -> string (a non-string key such as 1 loads as "1" and is
//     saved back quoted)
package yaml
