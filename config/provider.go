package config

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-cfg/config/mapping"
)

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that decodes the value at path into target and applies defaults.
//
// Decoding uses the target's yaml struct tags. An empty path decodes the whole source.
func Provider[T any](target *T, path string) func(Source) (*T, error) {
	return func(source Source) (*T, error) {
		raw, err := source.Get(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		data, err := yaml.Marshal(plainOf(raw))
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", path, err)
		}

		err = yaml.Unmarshal(data, target)
		if err != nil {
			return nil, fmt.Errorf("decoding %q: %w", path, err)
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("path", path))
			}
		}

		return target, nil
	}
}

func plainOf(value any) any {
	switch val := value.(type) {
	case plainer:
		return val.Plain()
	case *mapping.Map:
		return mapping.Plain(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainOf(item)
		}

		return out
	default:
		return value
	}
}
