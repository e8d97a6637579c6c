package config

import (
	"github.com/0xalexb/hjarta-cfg/config/backend"
	"github.com/0xalexb/hjarta-cfg/config/keypath"
)

// Options holds the settings used to open a View.
type Options struct {
	Registry *backend.Registry
	Codec    keypath.Codec
	// Dialect forces a dialect by name. Empty means detect.
	Dialect string
}

// Option defines a function type for applying view options.
type Option func(*Options)

// WithRegistry sets the dialects used to open files. Defaults to backend.DefaultRegistry.
func WithRegistry(registry *backend.Registry) Option {
	return func(opts *Options) {
		opts.Registry = registry
	}
}

// WithCodec sets the separator and escape characters used in paths.
func WithCodec(codec keypath.Codec) Option {
	return func(opts *Options) {
		opts.Codec = codec
	}
}

// WithDialect skips detection and opens files with the named dialect.
func WithDialect(name string) Option {
	return func(opts *Options) {
		opts.Dialect = name
	}
}

func newOptions(opts []Option) Options {
	options := Options{Codec: keypath.Default()}
	for _, apply := range opts {
		apply(&options)
	}

	if options.Registry == nil {
		options.Registry = backend.DefaultRegistry()
	}

	if options.Codec.Separator == 0 {
		options.Codec = keypath.Default()
	}

	return options
}
