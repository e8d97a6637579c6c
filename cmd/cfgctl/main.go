// Package main provides cfgctl, a command line tool to inspect and edit configuration files.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	exitCode := run(os.Args, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// run executes the CLI and returns an exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr)

		return 1
	}

	switch args[1] {
	case "get":
		return getCmd(args[2:], stdout, stderr)
	case "set":
		return setCmd(args[2:], stdout, stderr)
	case "del":
		return delCmd(args[2:], stdout, stderr)
	case "keys":
		return keysCmd(args[2:], stdout, stderr)
	case "show":
		return showCmd(args[2:], stdout, stderr)
	case "find":
		return findCmd(args[2:], stdout, stderr)
	case "version":
		return versionCmd(args[2:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)

		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[1])
		fmt.Fprintln(stderr, "Run 'cfgctl help' for usage.")

		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "cfgctl - inspect and edit configuration files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cfgctl <command> [options] [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  get PATH          Print the value at PATH")
	fmt.Fprintln(w, "  set PATH VALUE    Set PATH to VALUE (parsed as YAML) and save")
	fmt.Fprintln(w, "  del PATH          Delete PATH and save")
	fmt.Fprintln(w, "  keys [PATH]       List the keys of the mapping at PATH")
	fmt.Fprintln(w, "  show              Describe the loaded configuration")
	fmt.Fprintln(w, "  find              List the files the search policy finds")
	fmt.Fprintln(w, "  version           Print version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Source options (all commands except version):")
	fmt.Fprintln(w, "  -file string        Configuration file to use; skips the search")
	fmt.Fprintln(w, "  -basename string    Program name used by the search policy")
	fmt.Fprintln(w, "  -local-path string  Directory holding .<basename>.rc")
	fmt.Fprintln(w, "  -system-dir string  Directory holding <basename>.rc (default /etc)")
	fmt.Fprintln(w, "  -dialect string     Force a dialect: lua, toml or yaml")
	fmt.Fprintln(w, "  -log-level string   debug, info, warn or error (default warn)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Paths are dot separated; escape a literal dot with a backslash: hosts.www\.example\.com`)
}
