// Package mapping provides the ordered nested mapping that backs every loaded
// configuration, plus navigation by key sequence.
//
// A *Map is mutated in place and shared: every view over a configuration holds
// pointers into the same tree, so a change made through one is visible through
// all of them.
package mapping

import (
	"iter"
	"slices"
	"sort"
)

// Map is an insertion-ordered string-keyed map.
// The zero value is not usable; create maps with New.
type Map struct {
	keys   []string
	values map[string]any
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[string]any)}
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	value, ok := m.values[key]

	return value, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.values[key]

	return ok
}

// Set stores value under key. A new key is appended; an existing key keeps its position.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}

	delete(m.values, key)

	idx := slices.Index(m.keys, key)
	m.keys = slices.Delete(m.keys, idx, idx+1)

	return true
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in order.
func (m *Map) Keys() []string {
	return slices.Clone(m.keys)
}

// All iterates over key/value pairs in order.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range m.keys {
			if !yield(key, m.values[key]) {
				return
			}
		}
	}
}

// FromPlain builds a Map from a Go map. Keys are sorted since Go maps carry no order.
// Nested maps and slices are converted recursively.
func FromPlain(src map[string]any) *Map {
	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	result := New()
	for _, key := range keys {
		result.Set(key, Normalize(src[key]))
	}

	return result
}

// Normalize converts plain Go containers into the value model used by Map:
// map[string]any becomes *Map, slices become []any, and integer kinds become int64.
func Normalize(value any) any {
	switch val := value.(type) {
	case map[string]any:
		return FromPlain(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}

		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}

		return out
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return normalizeUnsigned(uint64(val))
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return normalizeUnsigned(val)
	case float32:
		return float64(val)
	default:
		return value
	}
}

func normalizeUnsigned(val uint64) any {
	if val > uint64(1<<63-1) {
		return val
	}

	return int64(val)
}

// Plain converts m into nested map[string]any values, dropping key order.
func Plain(m *Map) map[string]any {
	result := make(map[string]any, m.Len())
	for key, value := range m.All() {
		result[key] = plainValue(value)
	}

	return result
}

func plainValue(value any) any {
	switch val := value.(type) {
	case *Map:
		return Plain(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}

		return out
	default:
		return value
	}
}

// Clone returns a deep copy of m.
func Clone(m *Map) *Map {
	result := New()
	for key, value := range m.All() {
		result.Set(key, cloneValue(value))
	}

	return result
}

func cloneValue(value any) any {
	switch val := value.(type) {
	case *Map:
		return Clone(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}

		return out
	default:
		return value
	}
}
