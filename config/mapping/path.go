package mapping

import (
	"errors"
	"fmt"
)

// ErrMissingKey is matched by every MissingKeyError.
var ErrMissingKey = errors.New("missing key")

// ErrNotMapping is returned when a path must descend through a value that is not a mapping.
var ErrNotMapping = errors.New("value is not a mapping")

// MissingKeyError names the single key that could not be found at the level
// where traversal stopped, not the whole path.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing key %q in mapping", e.Key)
}

// Is makes errors.Is(err, ErrMissingKey) succeed.
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// Lookup returns the value found by following keys from m.
// With no keys, m itself is returned.
func Lookup(m *Map, keys []string) (any, error) {
	var current any = m

	for _, key := range keys {
		node, ok := current.(*Map)
		if !ok {
			return nil, &MissingKeyError{Key: key}
		}

		value, found := node.Get(key)
		if !found {
			return nil, &MissingKeyError{Key: key}
		}

		current = value
	}

	return current, nil
}

// Assign stores value at keys, creating intermediate mappings as needed.
func Assign(m *Map, keys []string, value any) error {
	if len(keys) == 0 {
		return errors.New("assign: empty key path")
	}

	parent := m

	for _, key := range keys[:len(keys)-1] {
		existing, found := parent.Get(key)
		if !found {
			child := New()
			parent.Set(key, child)
			parent = child

			continue
		}

		child, ok := existing.(*Map)
		if !ok {
			return fmt.Errorf("%w: %q", ErrNotMapping, key)
		}

		parent = child
	}

	parent.Set(keys[len(keys)-1], value)

	return nil
}

// Remove deletes the value at keys. Every key, including the last, must exist.
func Remove(m *Map, keys []string) error {
	if len(keys) == 0 {
		return errors.New("remove: empty key path")
	}

	parentValue, err := Lookup(m, keys[:len(keys)-1])
	if err != nil {
		return err
	}

	last := keys[len(keys)-1]

	parent, ok := parentValue.(*Map)
	if !ok || !parent.Delete(last) {
		return &MissingKeyError{Key: last}
	}

	return nil
}

// Walk calls fn for every leaf value under m with the full key sequence leading to it.
// Nested mappings are descended into; every other value, including sequences, is a leaf.
// Returning false from fn stops the walk.
func Walk(m *Map, fn func(keys []string, value any) bool) {
	walk(m, nil, fn)
}

func walk(m *Map, prefix []string, fn func(keys []string, value any) bool) bool {
	for key, value := range m.All() {
		keys := append(append(make([]string, 0, len(prefix)+1), prefix...), key)

		if child, ok := value.(*Map); ok {
			if !walk(child, keys, fn) {
				return false
			}

			continue
		}

		if !fn(keys, value) {
			return false
		}
	}

	return true
}

// LeafCount returns the number of flattened leaf values under m.
func LeafCount(m *Map) int {
	count := 0

	Walk(m, func(_ []string, _ any) bool {
		count++

		return true
	})

	return count
}
