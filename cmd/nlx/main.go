// Command nlx is the command-line front end for the nlx compiler and VM.
// With no arguments it starts a REPL; with one argument it runs a source
// file. A first argument of "repl", "run", or "emit" instead dispatches to
// the matching subcommand, which exposes the debug/disassembly flags that
// the plain two-shape invocation does not need.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

const (
	exitUsage   = 64
	exitNoInput = 66
)

func main() {
	os.Exit(dispatch(os.Args[1:]))
}

func dispatch(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "repl", "run", "emit":
			return runSubcommand(args)
		}
	}

	switch len(args) {
	case 0:
		return (&replCmd{}).run(false)
	case 1:
		return (&runCmd{}).run(args[0], false)
	default:
		fmt.Fprintln(os.Stderr, "Usage: nlx [path]")
		return exitUsage
	}
}

// runSubcommand hands off to google/subcommands for the explicit
// repl/run/emit invocations, which carry their own -debug/-disassemble/
// -dump-bytecode flags via each Command's SetFlags.
func runSubcommand(args []string) int {
	fs := flag.NewFlagSet("nlx", flag.ExitOnError)
	cmdr := subcommands.NewCommander(fs, "nlx")
	cmdr.Register(cmdr.HelpCommand(), "")
	cmdr.Register(cmdr.FlagsCommand(), "")
	cmdr.Register(cmdr.CommandsCommand(), "")
	cmdr.Register(&replCmd{}, "")
	cmdr.Register(&runCmd{}, "")
	cmdr.Register(&emitCmd{}, "")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	return int(cmdr.Execute(context.Background()))
}
