// Package backend binds a configuration dialect to a file.
//
// A Backend owns the single parsed mapping of its file. The mapping is
// computed on first access and cached; every view over the backend shares it,
// and Save persists it back through the dialect when the dialect can write.
//
// Dialects are selected explicitly by name or detected by trial parse through
// a Registry, an ordered list whose order is the detection precedence.
package backend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/0xalexb/hjarta-cfg/config/mapping"
)

// ErrUnsupportedWrite is returned when saving through a read-only dialect.
var ErrUnsupportedWrite = errors.New("dialect does not support writing")

// ErrDialectUnavailable is returned when a dialect is requested but its implementation is not built in.
var ErrDialectUnavailable = errors.New("dialect unavailable")

// Backend is a dialect bound to one file.
type Backend interface {
	// Name returns the dialect name.
	Name() string
	// Filename returns the backing file.
	Filename() string
	// Mapping returns the parsed mapping, loading it on first call.
	Mapping() (*mapping.Map, error)
	// Save writes the cached mapping back to the file.
	Save() error
}

// LoadFunc parses filename into a mapping.
type LoadFunc func(filename string) (*mapping.Map, error)

// SaveFunc writes m to filename.
type SaveFunc func(filename string, m *mapping.Map) error

// Factory creates a Backend for filename.
type Factory func(filename string) (Backend, error)

// Custom is a Backend built from a load function and an optional save function.
type Custom struct {
	name     string
	filename string
	save     SaveFunc
	load     func() (*mapping.Map, error)
}

// NewCustom returns a Factory for a dialect named name.
// A nil save makes the dialect read-only.
func NewCustom(name string, load LoadFunc, save SaveFunc) Factory {
	return func(filename string) (Backend, error) {
		if load == nil {
			return nil, fmt.Errorf("dialect %q: no load function", name)
		}

		return &Custom{
			name:     name,
			filename: filename,
			save:     save,
			load: sync.OnceValues(func() (*mapping.Map, error) {
				return load(filename)
			}),
		}, nil
	}
}

// Name returns the dialect name.
func (c *Custom) Name() string {
	return c.name
}

// Filename returns the backing file.
func (c *Custom) Filename() string {
	return c.filename
}

// Mapping returns the cached mapping. The file is parsed at most once.
func (c *Custom) Mapping() (*mapping.Map, error) {
	return c.load()
}

// Save writes the cached mapping back to the file.
func (c *Custom) Save() error {
	if c.save == nil {
		return fmt.Errorf("saving %q as %s: %w", c.filename, c.name, ErrUnsupportedWrite)
	}

	m, err := c.load()
	if err != nil {
		return err
	}

	err = c.save(c.filename, m)
	if err != nil {
		return fmt.Errorf("saving %q as %s: %w", c.filename, c.name, err)
	}

	return nil
}

func (c *Custom) String() string {
	return fmt.Sprintf("%s(%q)", c.name, c.filename)
}

// Memory is a Backend with no file behind it. Save is a no-op.
type Memory struct {
	name string
	data *mapping.Map
}

// NewMemory returns a Backend over m. A nil m starts empty.
func NewMemory(name string, m *mapping.Map) *Memory {
	if m == nil {
		m = mapping.New()
	}

	return &Memory{name: name, data: m}
}

// Name returns the backend name.
func (m *Memory) Name() string {
	return m.name
}

// Filename returns a placeholder describing the in-memory source.
func (m *Memory) Filename() string {
	return "<" + m.name + ">"
}

// Mapping returns the in-memory mapping.
func (m *Memory) Mapping() (*mapping.Map, error) {
	return m.data, nil
}

// Save does nothing; there is nowhere to persist to.
func (m *Memory) Save() error {
	return nil
}
