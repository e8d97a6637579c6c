package main

import (
	"flag"
	"fmt"
	"io"
	"runtime"

	cfg "github.com/0xalexb/hjarta-cfg"
	"github.com/0xalexb/hjarta-cfg/config/backend"
)

// versionCmd handles the version command.
func versionCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	fs.SetOutput(stderr)

	short := fs.Bool("short", false, "Show only version number")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *short {
		fmt.Fprintln(stdout, cfg.Version)

		return 0
	}

	fmt.Fprintf(stdout, "cfgctl version %s\n", cfg.Version)
	fmt.Fprintf(stdout, "  Built:      %s\n", cfg.CompiledAt)
	fmt.Fprintf(stdout, "  Dialects:   %v\n", backend.DefaultRegistry().Names())
	fmt.Fprintf(stdout, "  Lua:        %v\n", backend.LuaAvailable)
	fmt.Fprintf(stdout, "  Go version: %s\n", runtime.Version())

	return 0
}
