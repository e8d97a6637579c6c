package cfg

import (
	"github.com/0xalexb/hjarta-cfg/config"
	"github.com/0xalexb/hjarta-cfg/config/finder"
)

// DefaultSystemDir holds system-wide configuration files.
const DefaultSystemDir = "/etc"

// Options holds the settings of a Load call.
type Options struct {
	Basename   string
	ConfigFile string
	LocalPath  string
	SystemDir  string
	// Rules replaces the default search policy when set.
	Rules []finder.Rule
	// Default is served when no file is found. Nil means a miss is an error.
	Default     map[string]any
	ViewOptions []config.Option
}

// Option defines a function type for applying load options.
type Option func(*Options)

// WithBasename sets the program name used to build file names and the environment variable.
// Defaults to the executable name.
func WithBasename(basename string) Option {
	return func(opts *Options) {
		opts.Basename = basename
	}
}

// WithConfigFile sets an explicit configuration file, typically from a command line flag.
// The file must exist.
func WithConfigFile(path string) Option {
	return func(opts *Options) {
		opts.ConfigFile = path
	}
}

// WithLocalPath adds <path>/.<basename>.rc to the search, before the home directory.
func WithLocalPath(path string) Option {
	return func(opts *Options) {
		opts.LocalPath = path
	}
}

// WithSystemDir replaces /etc as the location of the system-wide file.
func WithSystemDir(dir string) Option {
	return func(opts *Options) {
		opts.SystemDir = dir
	}
}

// WithRules replaces the whole search policy.
func WithRules(rules ...finder.Rule) Option {
	return func(opts *Options) {
		opts.Rules = append(opts.Rules, rules...)
	}
}

// WithDefault makes Load return an overlay over defaults instead of failing when no file is found.
// A nil map serves an empty configuration.
func WithDefault(defaults map[string]any) Option {
	return func(opts *Options) {
		if defaults == nil {
			defaults = map[string]any{}
		}

		opts.Default = defaults
	}
}

// WithViewOptions passes options to every view opened by Load.
func WithViewOptions(viewOpts ...config.Option) Option {
	return func(opts *Options) {
		opts.ViewOptions = append(opts.ViewOptions, viewOpts...)
	}
}
