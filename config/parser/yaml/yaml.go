package yaml

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-cfg/config/fetcher/file"
	"github.com/0xalexb/hjarta-cfg/config/mapping"
	"github.com/0xalexb/hjarta-cfg/config/parser"
)

// Name identifies this dialect.
const Name = "yaml"

// Load reads filename and parses it as a YAML mapping.
func Load(filename string) (*mapping.Map, error) {
	data, err := file.Read(filename)
	if err != nil {
		return nil, err
	}

	return Parse(filename, data)
}

// Save serializes m as block-style YAML and overwrites filename.
func Save(filename string, m *mapping.Map) error {
	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", filename, err)
	}

	return file.Write(filename, data)
}

// Parse parses YAML data whose root must be a mapping. Empty data yields an empty mapping.
// Key order is kept as it appears in the document.
func Parse(filename string, data []byte) (*mapping.Map, error) {
	var doc any

	err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap())
	if err != nil {
		return nil, &parser.SyntaxError{Dialect: Name, Filename: filename, Message: err.Error(), Err: err}
	}

	if doc == nil {
		return mapping.New(), nil
	}

	root, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, &parser.SyntaxError{
			Dialect:  Name,
			Filename: filename,
			Message:  fmt.Sprintf("document root is not a mapping (got %T)", doc),
		}
	}

	return fromMapSlice(root), nil
}

// Marshal encodes m as YAML, keeping key order.
func Marshal(m *mapping.Map) ([]byte, error) {
	data, err := yaml.Marshal(toMapSlice(m))
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

// ParseValue parses a single YAML scalar or flow value, such as a command line argument.
func ParseValue(text string) (any, error) {
	var value any

	err := yaml.UnmarshalWithOptions([]byte(text), &value, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return fromYAML(value), nil
}

func fromMapSlice(items yaml.MapSlice) *mapping.Map {
	result := mapping.New()
	for _, item := range items {
		result.Set(keyString(item.Key), fromYAML(item.Value))
	}

	return result
}

func fromYAML(value any) any {
	switch val := value.(type) {
	case yaml.MapSlice:
		return fromMapSlice(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromYAML(item)
		}

		return out
	case uint64:
		if val > math.MaxInt64 {
			return val
		}

		return int64(val)
	default:
		return mapping.Normalize(value)
	}
}

func toMapSlice(m *mapping.Map) yaml.MapSlice {
	items := make(yaml.MapSlice, 0, m.Len())
	for key, value := range m.All() {
		items = append(items, yaml.MapItem{Key: key, Value: toYAML(value)})
	}

	return items
}

func toYAML(value any) any {
	switch val := value.(type) {
	case *mapping.Map:
		return toMapSlice(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = toYAML(item)
		}

		return out
	default:
		return value
	}
}

func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}

	return fmt.Sprint(key)
}
