package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrTypeMismatch is returned when a value does not have the requested type.
var ErrTypeMismatch = errors.New("value type mismatch")

// Source resolves key paths. Both View and an overlay of views implement it.
type Source interface {
	Get(path string) (any, error)
}

// plainer is implemented by sources that can copy themselves into plain maps.
type plainer interface {
	Plain() map[string]any
}

// Value returns the value at path asserted to T.
func Value[T any](source Source, path string) (T, error) {
	var zero T

	raw, err := source.Get(path)
	if err != nil {
		return zero, err
	}

	value, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T, want %T", ErrTypeMismatch, path, raw, zero)
	}

	return value, nil
}

// Int returns the integer at path. Floats without a fractional part are accepted.
func Int(source Source, path string) (int64, error) {
	raw, err := source.Get(path)
	if err != nil {
		return 0, err
	}

	switch val := raw.(type) {
	case int64:
		return val, nil
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < math.MaxInt64 {
			return int64(val), nil
		}
	}

	return 0, fmt.Errorf("%w: %q is %T, want integer", ErrTypeMismatch, path, raw)
}

// Float returns the number at path as float64.
func Float(source Source, path string) (float64, error) {
	raw, err := source.Get(path)
	if err != nil {
		return 0, err
	}

	switch val := raw.(type) {
	case float64:
		return val, nil
	case int64:
		return float64(val), nil
	}

	return 0, fmt.Errorf("%w: %q is %T, want number", ErrTypeMismatch, path, raw)
}

// Plain returns the mapping at path as nested map[string]any.
func Plain(source Source, path string) (map[string]any, error) {
	raw, err := source.Get(path)
	if err != nil {
		return nil, err
	}

	p, ok := raw.(plainer)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want mapping", ErrTypeMismatch, path, raw)
	}

	return p.Plain(), nil
}
