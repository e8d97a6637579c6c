// Package toml implements the nested-section configuration dialect on top of
// github.com/BurntSushi/toml.
//
// Tables become nested mappings. Keys keep the order in which they appear in
// the file; when a mapping is saved the encoder writes keys sorted, with plain
// values before sub-tables.
package toml

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/0xalexb/hjarta-cfg/config/fetcher/file"
	"github.com/0xalexb/hjarta-cfg/config/mapping"
	"github.com/0xalexb/hjarta-cfg/config/parser"
)

// Name identifies this dialect.
const Name = "toml"

// ErrUnrepresentable is returned when a mapping holds a value TOML cannot encode.
var ErrUnrepresentable = errors.New("value has no TOML representation")

// keySep joins key paths when recording their position in the file.
const keySep = "\x00"

// Load reads filename and parses it as TOML.
func Load(filename string) (*mapping.Map, error) {
	data, err := file.Read(filename)
	if err != nil {
		return nil, err
	}

	return Parse(filename, data)
}

// Save encodes m as TOML and overwrites filename.
func Save(filename string, m *mapping.Map) error {
	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", filename, err)
	}

	return file.Write(filename, data)
}

// Parse parses TOML data into an ordered mapping.
func Parse(filename string, data []byte) (*mapping.Map, error) {
	var doc map[string]any

	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		syntaxErr := &parser.SyntaxError{Dialect: Name, Filename: filename, Message: err.Error(), Err: err}

		var parseErr toml.ParseError
		if errors.As(err, &parseErr) {
			syntaxErr.Line = parseErr.Position.Line
			syntaxErr.Column = parseErr.Position.Col
			syntaxErr.Message = parseErr.Message
		}

		return nil, syntaxErr
	}

	positions := make(map[string]int)
	for idx, key := range meta.Keys() {
		joined := strings.Join(key, keySep)
		if _, seen := positions[joined]; !seen {
			positions[joined] = idx
		}
	}

	return fromTable(doc, "", positions), nil
}

// Marshal encodes m as TOML.
//
// TOML has no null. A nil anywhere in m fails with ErrUnrepresentable instead
// of being dropped from the output.
func Marshal(m *mapping.Map) ([]byte, error) {
	err := checkRepresentable(m, nil)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	err = toml.NewEncoder(&buf).Encode(mapping.Plain(m))
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return buf.Bytes(), nil
}

func checkRepresentable(value any, path []string) error {
	switch val := value.(type) {
	case nil:
		return fmt.Errorf("%w: %q is null", ErrUnrepresentable, strings.Join(path, "."))
	case *mapping.Map:
		for key, item := range val.All() {
			err := checkRepresentable(item, append(slices.Clone(path), key))
			if err != nil {
				return err
			}
		}
	case []any:
		for i, item := range val {
			err := checkRepresentable(item, append(slices.Clone(path), fmt.Sprintf("[%d]", i)))
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func fromTable(table map[string]any, prefix string, positions map[string]int) *mapping.Map {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}

	position := func(key string) int {
		if idx, ok := positions[prefix+key]; ok {
			return idx
		}

		return len(positions)
	}

	slices.SortStableFunc(keys, func(a, b string) int {
		if diff := position(a) - position(b); diff != 0 {
			return diff
		}

		return strings.Compare(a, b)
	})

	result := mapping.New()
	for _, key := range keys {
		result.Set(key, fromTOML(table[key], prefix+key+keySep, positions))
	}

	return result
}

func fromTOML(value any, prefix string, positions map[string]int) any {
	switch val := value.(type) {
	case map[string]any:
		return fromTable(val, prefix, positions)
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromTable(item, prefix, positions)
		}

		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromTOML(item, prefix, positions)
		}

		return out
	default:
		return mapping.Normalize(value)
	}
}
