// Package overlay combines several configuration views into one read view.
//
// Lookups query the views in order and return the first hit, so earlier views
// shadow later ones key by key. Nothing is merged or copied. Writes go to a
// single view obtained from Views.
package overlay

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/0xalexb/hjarta-cfg/config"
	"github.com/0xalexb/hjarta-cfg/config/mapping"
)

// Overlay is an ordered list of views queried front to back.
type Overlay struct {
	views []*config.View
}

// New returns an overlay over views, highest precedence first.
func New(views ...*config.View) *Overlay {
	return &Overlay{views: append([]*config.View(nil), views...)}
}

// Get returns the value at path from the first view that has it.
//
// Only a missing key moves on to the next view; any other error is returned
// at once. When every view misses, the last miss is returned. An empty path
// returns the overlay itself.
func (o *Overlay) Get(path string) (any, error) {
	if path == "" {
		return o, nil
	}

	err := error(&mapping.MissingKeyError{Key: path})

	for _, view := range o.views {
		var value any

		value, err = view.Get(path)
		if err == nil {
			return value, nil
		}

		if !errors.Is(err, mapping.ErrMissingKey) {
			return nil, err
		}
	}

	return nil, err
}

// Lookup is Get that reports a failed resolution as false.
func (o *Overlay) Lookup(path string) (any, bool) {
	value, err := o.Get(path)
	if err != nil {
		return nil, false
	}

	return value, true
}

// Has reports whether any view has the literal top-level key.
func (o *Overlay) Has(key string) bool {
	for _, view := range o.views {
		if view.Has(key) {
			return true
		}
	}

	return false
}

// Keys returns the union of top-level keys, in order of first appearance.
func (o *Overlay) Keys() []string {
	seen := make(map[string]bool)

	var keys []string

	for _, view := range o.views {
		for _, key := range view.Keys() {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}

	return keys
}

// All iterates over the union of top-level keys with the value each key resolves to.
func (o *Overlay) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range o.Keys() {
			for _, view := range o.views {
				value, ok := view.Lookup(escape(view, key))
				if !ok {
					continue
				}

				if !yield(key, value) {
					return
				}

				break
			}
		}
	}
}

// Len returns the number of distinct top-level keys.
func (o *Overlay) Len() int {
	return len(o.Keys())
}

// Views returns the underlying views in precedence order.
func (o *Overlay) Views() []*config.View {
	return append([]*config.View(nil), o.views...)
}

// Filenames returns the file behind each view, in precedence order.
func (o *Overlay) Filenames() []string {
	names := make([]string, len(o.views))
	for i, view := range o.views {
		names[i] = view.Filename()
	}

	return names
}

// Plain merges the views into nested maps. Top-level keys of earlier views win.
func (o *Overlay) Plain() map[string]any {
	result := make(map[string]any)

	for i := len(o.views) - 1; i >= 0; i-- {
		for key, value := range o.views[i].Plain() {
			result[key] = value
		}
	}

	return result
}

func (o *Overlay) String() string {
	return fmt.Sprintf("<Overlay [%s]>", strings.Join(o.Filenames(), ", "))
}

// escape turns a literal top-level key into a single-key path for view.
func escape(view *config.View, key string) string {
	return view.Codec().EscapeKey(key)
}
