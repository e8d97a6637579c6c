package config

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/0xalexb/hjarta-cfg/config/backend"
	"github.com/0xalexb/hjarta-cfg/config/keypath"
	"github.com/0xalexb/hjarta-cfg/config/mapping"
)

// ErrEmptyPath is returned by Set and Delete when the path has no keys.
var ErrEmptyPath = errors.New("empty key path")

// View is a position inside a backend's mapping.
//
// Views are cheap: descending into a nested mapping creates a new View that
// shares the backend and the nested node. Writes through any View are visible
// through every other View of the same backend.
type View struct {
	backend backend.Backend
	codec   keypath.Codec
	prefix  []string
	node    *mapping.Map
}

// New returns the root View of b, loading its mapping if needed.
func New(b backend.Backend, opts ...Option) (*View, error) {
	options := newOptions(opts)

	root, err := b.Mapping()
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", b.Filename(), err)
	}

	return &View{backend: b, codec: options.Codec, node: root}, nil
}

// Open creates a backend for filename and returns its root View.
// The dialect is detected unless WithDialect is given.
func Open(filename string, opts ...Option) (*View, error) {
	options := newOptions(opts)

	b, err := options.Registry.Load(options.Dialect, filename)
	if err != nil {
		return nil, err
	}

	return New(b, opts...)
}

// Get resolves path relative to the view.
//
// Nested mappings are returned as *View. A key that cannot be found yields a
// *mapping.MissingKeyError naming that key. An empty path returns the view itself.
func (v *View) Get(path string) (any, error) {
	keys := v.codec.Tokenize(path)
	if len(keys) == 0 {
		return v, nil
	}

	value, err := mapping.Lookup(v.node, keys)
	if err != nil {
		return nil, err
	}

	return v.wrap(keys, value), nil
}

// Lookup is Get that reports a failed resolution as false.
func (v *View) Lookup(path string) (any, bool) {
	value, err := v.Get(path)
	if err != nil {
		return nil, false
	}

	return value, true
}

// Set assigns value at path, creating intermediate mappings, and saves the backend.
//
// The assignment happens before the save. If the save fails the new value
// stays in memory and the error is returned.
func (v *View) Set(path string, value any) error {
	keys := v.codec.Tokenize(path)
	if len(keys) == 0 {
		return ErrEmptyPath
	}

	err := mapping.Assign(v.node, keys, v.normalize(value))
	if err != nil {
		return fmt.Errorf("setting %q: %w", path, err)
	}

	return v.backend.Save()
}

// Delete removes the value at path and saves the backend.
// Every key of the path must exist.
func (v *View) Delete(path string) error {
	keys := v.codec.Tokenize(path)
	if len(keys) == 0 {
		return ErrEmptyPath
	}

	err := mapping.Remove(v.node, keys)
	if err != nil {
		return err
	}

	return v.backend.Save()
}

// Keys returns the top-level keys of the view in mapping order.
func (v *View) Keys() []string {
	return v.node.Keys()
}

// All iterates over the top-level entries. Nested mappings are yielded as *View.
func (v *View) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for key, value := range v.node.All() {
			if !yield(key, v.wrap([]string{key}, value)) {
				return
			}
		}
	}
}

// Has reports whether key is a top-level key. key is a literal key, not a path.
func (v *View) Has(key string) bool {
	return v.node.Has(key)
}

// Len returns the number of top-level keys.
func (v *View) Len() int {
	return v.node.Len()
}

// Prefix returns the path of the view from the backend root.
func (v *View) Prefix() string {
	return v.codec.Untokenize(v.prefix)
}

// PrefixKeys returns the raw keys locating the view from the backend root.
func (v *View) PrefixKeys() []string {
	return slices.Clone(v.prefix)
}

// Filename returns the file behind the view.
func (v *View) Filename() string {
	return v.backend.Filename()
}

// Backend returns the backend owning the view's mapping.
func (v *View) Backend() backend.Backend {
	return v.backend
}

// Codec returns the codec used to split paths.
func (v *View) Codec() keypath.Codec {
	return v.codec
}

// Plain returns a deep copy of the view's mapping as nested map[string]any.
func (v *View) Plain() map[string]any {
	return mapping.Plain(v.node)
}

// String reports the file, the number of leaf values below the view and, for
// nested views, the prefix.
func (v *View) String() string {
	if len(v.prefix) == 0 {
		return fmt.Sprintf("<View %q (%d values)>", v.backend.Filename(), mapping.LeafCount(v.node))
	}

	return fmt.Sprintf("<View %q (%d values prefix=%q)>",
		v.backend.Filename(), mapping.LeafCount(v.node), v.Prefix())
}

func (v *View) wrap(keys []string, value any) any {
	node, ok := value.(*mapping.Map)
	if !ok {
		return value
	}

	prefix := make([]string, 0, len(v.prefix)+len(keys))
	prefix = append(prefix, v.prefix...)
	prefix = append(prefix, keys...)

	return &View{backend: v.backend, codec: v.codec, prefix: prefix, node: node}
}

// normalize copies views and converts plain Go containers to the mapping value model.
func (v *View) normalize(value any) any {
	switch val := value.(type) {
	case *View:
		return mapping.Clone(val.node)
	case *mapping.Map:
		if val == v.node {
			return mapping.Clone(val)
		}

		return val
	default:
		return mapping.Normalize(value)
	}
}
