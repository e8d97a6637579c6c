// Package keypath converts between dotted key paths and sequences of raw keys.
//
// A path is a list of keys joined by a separator (default '.'). The escape
// character (default '\') makes the next character literal, so a key may
// itself contain the separator or the escape character:
//
//	"a.b"     -> ["a", "b"]
//	`a\.b`    -> ["a.b"]
//	`a\\.b`   -> [`a\`, "b"]
//	""        -> []
package keypath

import "strings"

const (
	// DefaultSeparator separates keys in a path.
	DefaultSeparator = '.'
	// DefaultEscape makes the following character part of the current key.
	DefaultEscape = '\\'
)

// Codec tokenizes and untokenizes paths using a separator and an escape character.
type Codec struct {
	Separator rune
	Escape    rune
}

// Default returns the codec using '.' as separator and '\' as escape.
func Default() Codec {
	return Codec{Separator: DefaultSeparator, Escape: DefaultEscape}
}

// Tokenize splits path into raw keys, honoring escapes.
// An empty path yields no keys. A trailing escape character is kept literally.
func (c Codec) Tokenize(path string) []string {
	if path == "" {
		return nil
	}

	var (
		keys    []string
		current strings.Builder
		escaped bool
	)

	for _, r := range path {
		switch {
		case escaped:
			current.WriteRune(r)

			escaped = false
		case r == c.Escape:
			escaped = true
		case r == c.Separator:
			keys = append(keys, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	if escaped {
		current.WriteRune(c.Escape)
	}

	return append(keys, current.String())
}

// Untokenize joins keys into a path, escaping separators and escape characters.
func (c Codec) Untokenize(keys []string) string {
	escaped := make([]string, len(keys))
	for i, key := range keys {
		escaped[i] = c.EscapeKey(key)
	}

	return strings.Join(escaped, string(c.Separator))
}

// EscapeKey escapes a single raw key so it is read back as one key.
func (c Codec) EscapeKey(key string) string {
	if !strings.ContainsRune(key, c.Separator) && !strings.ContainsRune(key, c.Escape) {
		return key
	}

	var builder strings.Builder

	for _, r := range key {
		if r == c.Separator || r == c.Escape {
			builder.WriteRune(c.Escape)
		}

		builder.WriteRune(r)
	}

	return builder.String()
}

// Tokenize splits path using the default codec.
func Tokenize(path string) []string {
	return Default().Tokenize(path)
}

// Untokenize joins keys using the default codec.
func Untokenize(keys []string) string {
	return Default().Untokenize(keys)
}
