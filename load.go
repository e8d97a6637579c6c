package cfg

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xalexb/hjarta-cfg/config"
	"github.com/0xalexb/hjarta-cfg/config/backend"
	"github.com/0xalexb/hjarta-cfg/config/finder"
	"github.com/0xalexb/hjarta-cfg/config/mapping"
	"github.com/0xalexb/hjarta-cfg/config/overlay"
)

// defaultName names the in-memory backend serving WithDefault values.
const defaultName = "default"

// LoadFiles opens one view per file, detecting each dialect independently,
// and overlays them in the given order.
func LoadFiles(filenames []string, opts ...config.Option) (*overlay.Overlay, error) {
	views := make([]*config.View, 0, len(filenames))

	for _, filename := range filenames {
		view, err := config.Open(filename, opts...)
		if err != nil {
			return nil, err
		}

		slog.Debug("config file loaded", slog.String("path", filename), slog.String("dialect", view.Backend().Name()))

		views = append(views, view)
	}

	return overlay.New(views...), nil
}

// Load searches for configuration files and overlays every file found.
//
// When nothing is found, the WithDefault values are served if given;
// otherwise the *finder.NoFileFoundError is returned.
func Load(opts ...Option) (*overlay.Overlay, error) {
	var options Options
	for _, apply := range opts {
		apply(&options)
	}

	if options.Basename == "" {
		options.Basename = inferBasename(os.Args[0])
	}

	if options.SystemDir == "" {
		options.SystemDir = DefaultSystemDir
	}

	rules := options.Rules
	if rules == nil {
		rules = DefaultRules(options.Basename, options.ConfigFile, options.LocalPath, options.SystemDir)
	}

	filenames, err := finder.FindFiles(rules, options.Default == nil)
	if err != nil {
		return nil, fmt.Errorf("finding %s config: %w", options.Basename, err)
	}

	if len(filenames) == 0 {
		slog.Debug("no config file found, using defaults", slog.String("basename", options.Basename))

		view, err := config.New(backend.NewMemory(defaultName, mapping.FromPlain(options.Default)), options.ViewOptions...)
		if err != nil {
			return nil, err
		}

		return overlay.New(view), nil
	}

	return LoadFiles(filenames, options.ViewOptions...)
}

// DefaultRules returns the standard search policy for basename.
// Empty configFile and localPath disable their rules.
func DefaultRules(basename, configFile, localPath, systemDir string) []finder.Rule {
	rcName := "." + basename + ".rc"

	rules := []finder.Rule{
		{Enforce: true, Filename: finder.Path(configFile)},
		{Enforce: true, Filename: finder.Env(EnvVar(basename))},
	}

	if localPath != "" {
		rules = append(rules, finder.Rule{Cascade: true, Filename: finder.Path(filepath.Join(localPath, rcName))})
	}

	return append(rules,
		finder.Rule{Cascade: true, Filename: finder.Path(filepath.Join("~", rcName))},
		finder.Rule{Cascade: true, Filename: finder.Path(filepath.Join(systemDir, basename+".rc"))},
	)
}

// EnvVar returns the environment variable naming the config file of basename.
func EnvVar(basename string) string {
	return strings.ToUpper(basename) + "_CONFIG_FILENAME"
}

// inferBasename derives a program name from its invocation path.
func inferBasename(arg0 string) string {
	name := filepath.Base(arg0)
	for _, suffix := range []string{".exe", ".go"} {
		name = strings.TrimSuffix(name, suffix)
	}

	return name
}
