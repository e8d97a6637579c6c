package main

import (
	"errors"
	"flag"
	"io"
	"iter"
	"log/slog"

	cfg "github.com/0xalexb/hjarta-cfg"
	"github.com/0xalexb/hjarta-cfg/config"
	"github.com/0xalexb/hjarta-cfg/config/finder"
	"github.com/0xalexb/hjarta-cfg/logging"
)

var errNoSource = errors.New("either -file or -basename is required")

// reader is what read-only commands need from a view or an overlay.
type reader interface {
	config.Source
	Keys() []string
	All() iter.Seq2[string, any]
	String() string
}

// sourceFlags selects the configuration a command works on.
type sourceFlags struct {
	file      string
	basename  string
	localPath string
	systemDir string
	dialect   string
	logLevel  string
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *sourceFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var src sourceFlags

	fs.StringVar(&src.file, "file", "", "Configuration file to use")
	fs.StringVar(&src.basename, "basename", "", "Program name used by the search policy")
	fs.StringVar(&src.localPath, "local-path", "", "Directory holding .<basename>.rc")
	fs.StringVar(&src.systemDir, "system-dir", cfg.DefaultSystemDir, "Directory holding <basename>.rc")
	fs.StringVar(&src.dialect, "dialect", "", "Force a dialect: lua, toml or yaml")
	fs.StringVar(&src.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	return fs, &src
}

func (s *sourceFlags) setupLogging(stderr io.Writer) {
	slog.SetDefault(logging.NewLogger(logging.LoggerConfig{Level: s.logLevel, Format: logging.FormatText}, stderr))
}

func (s *sourceFlags) viewOptions() []config.Option {
	if s.dialect == "" {
		return nil
	}

	return []config.Option{config.WithDialect(s.dialect)}
}

func (s *sourceFlags) rules() []finder.Rule {
	return cfg.DefaultRules(s.basename, "", s.localPath, s.systemDir)
}

// openReader returns the explicit file, or the overlay of every file the search finds.
func (s *sourceFlags) openReader() (reader, error) {
	if s.file != "" {
		view, err := config.Open(s.file, s.viewOptions()...)
		if err != nil {
			return nil, err
		}

		return view, nil
	}

	if s.basename == "" {
		return nil, errNoSource
	}

	conf, err := cfg.Load(
		cfg.WithBasename(s.basename),
		cfg.WithLocalPath(s.localPath),
		cfg.WithSystemDir(s.systemDir),
		cfg.WithViewOptions(s.viewOptions()...),
	)
	if err != nil {
		return nil, err
	}

	return conf, nil
}

// openWritable returns a view over the explicit file, or over the first file the search finds.
func (s *sourceFlags) openWritable() (*config.View, error) {
	filename := s.file

	if filename == "" {
		if s.basename == "" {
			return nil, errNoSource
		}

		found, err := finder.FindFile(s.rules(), true)
		if err != nil {
			return nil, err
		}

		filename = found
	}

	return config.Open(filename, s.viewOptions()...)
}
