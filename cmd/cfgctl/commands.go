package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"iter"

	"github.com/goccy/go-yaml"

	cfg "github.com/0xalexb/hjarta-cfg"
	"github.com/0xalexb/hjarta-cfg/config"
	"github.com/0xalexb/hjarta-cfg/config/finder"
	luaparser "github.com/0xalexb/hjarta-cfg/config/parser/lua"
	yamlparser "github.com/0xalexb/hjarta-cfg/config/parser/yaml"
)

var errNotMapping = errors.New("value is not a mapping")

var errArgCount = errors.New("wrong number of arguments")

// parseArgs parses flags and checks the positional argument count.
func parseArgs(fs *flag.FlagSet, args []string, minArgs, maxArgs int) ([]string, error) {
	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}

	rest := fs.Args()
	if len(rest) < minArgs || len(rest) > maxArgs {
		return nil, fmt.Errorf("%w: %s expects %s", errArgCount, fs.Name(), argCount(minArgs, maxArgs))
	}

	return rest, nil
}

// usageExit maps a parseArgs error to an exit code. The flag package already printed its own errors.
func usageExit(err error, stderr io.Writer) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	if errors.Is(err, errArgCount) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}

	return 1
}

func argCount(minArgs, maxArgs int) string {
	if minArgs == maxArgs {
		return fmt.Sprintf("%d argument(s)", minArgs)
	}

	return fmt.Sprintf("%d to %d arguments", minArgs, maxArgs)
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)

	return 1
}

// getCmd handles the get command.
func getCmd(args []string, stdout, stderr io.Writer) int {
	fs, src := newFlagSet("get", stderr)

	rest, err := parseArgs(fs, args, 1, 1)
	if err != nil {
		return usageExit(err, stderr)
	}

	src.setupLogging(stderr)

	conf, err := src.openReader()
	if err != nil {
		return fail(stderr, err)
	}

	value, err := conf.Get(rest[0])
	if err != nil {
		return fail(stderr, err)
	}

	err = render(stdout, value)
	if err != nil {
		return fail(stderr, err)
	}

	return 0
}

// setCmd handles the set command.
func setCmd(args []string, stdout, stderr io.Writer) int {
	fs, src := newFlagSet("set", stderr)

	rest, err := parseArgs(fs, args, 2, 2)
	if err != nil {
		return usageExit(err, stderr)
	}

	src.setupLogging(stderr)

	value, err := yamlparser.ParseValue(rest[1])
	if err != nil {
		return fail(stderr, err)
	}

	view, err := src.openWritable()
	if err != nil {
		return fail(stderr, err)
	}

	err = view.Set(rest[0], value)
	if err != nil {
		return fail(stderr, err)
	}

	fmt.Fprintf(stdout, "%s: set %s\n", view.Filename(), rest[0])

	return 0
}

// delCmd handles the del command.
func delCmd(args []string, stdout, stderr io.Writer) int {
	fs, src := newFlagSet("del", stderr)

	rest, err := parseArgs(fs, args, 1, 1)
	if err != nil {
		return usageExit(err, stderr)
	}

	src.setupLogging(stderr)

	view, err := src.openWritable()
	if err != nil {
		return fail(stderr, err)
	}

	err = view.Delete(rest[0])
	if err != nil {
		return fail(stderr, err)
	}

	fmt.Fprintf(stdout, "%s: deleted %s\n", view.Filename(), rest[0])

	return 0
}

// keysCmd handles the keys command.
func keysCmd(args []string, stdout, stderr io.Writer) int {
	fs, src := newFlagSet("keys", stderr)

	rest, err := parseArgs(fs, args, 0, 1)
	if err != nil {
		return usageExit(err, stderr)
	}

	src.setupLogging(stderr)

	conf, err := src.openReader()
	if err != nil {
		return fail(stderr, err)
	}

	path := ""
	if len(rest) == 1 {
		path = rest[0]
	}

	value, err := conf.Get(path)
	if err != nil {
		return fail(stderr, err)
	}

	node, isReader := value.(reader)
	if !isReader {
		return fail(stderr, fmt.Errorf("%w: %q", errNotMapping, path))
	}

	for _, key := range node.Keys() {
		fmt.Fprintln(stdout, key)
	}

	return 0
}

// showCmd handles the show command.
func showCmd(args []string, stdout, stderr io.Writer) int {
	fs, src := newFlagSet("show", stderr)

	_, err := parseArgs(fs, args, 0, 0)
	if err != nil {
		return usageExit(err, stderr)
	}

	src.setupLogging(stderr)

	conf, err := src.openReader()
	if err != nil {
		return fail(stderr, err)
	}

	fmt.Fprintln(stdout, conf.String())

	switch c := conf.(type) {
	case *config.View:
		fmt.Fprintf(stdout, "  %s\t%s\n", c.Backend().Name(), c.Filename())
	case interface{ Views() []*config.View }:
		for _, view := range c.Views() {
			fmt.Fprintf(stdout, "  %s\t%s\n", view.Backend().Name(), view.Filename())
		}
	}

	return 0
}

// findCmd handles the find command.
func findCmd(args []string, stdout, stderr io.Writer) int {
	fs, src := newFlagSet("find", stderr)

	_, err := parseArgs(fs, args, 0, 0)
	if err != nil {
		return usageExit(err, stderr)
	}

	src.setupLogging(stderr)

	if src.basename == "" {
		return fail(stderr, errNoSource)
	}

	rules := cfg.DefaultRules(src.basename, src.file, src.localPath, src.systemDir)

	found, err := finder.FindFiles(rules, true)
	if err != nil {
		return fail(stderr, err)
	}

	for _, filename := range found {
		fmt.Fprintln(stdout, filename)
	}

	return 0
}

// render prints mappings and sequences as YAML and scalars as plain text.
func render(w io.Writer, value any) error {
	switch value.(type) {
	case reader, []any:
		data, err := yaml.Marshal(toYAML(value))
		if err != nil {
			return fmt.Errorf("rendering value: %w", err)
		}

		_, err = w.Write(data)

		return err
	default:
		_, err := fmt.Fprintln(w, toYAML(value))

		return err
	}
}

func toYAML(value any) any {
	switch val := value.(type) {
	case interface{ All() iter.Seq2[string, any] }:
		var items yaml.MapSlice
		for key, item := range val.All() {
			items = append(items, yaml.MapItem{Key: key, Value: toYAML(item)})
		}

		return items
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = toYAML(item)
		}

		return out
	case luaparser.Function:
		return "<function>"
	default:
		return value
	}
}
