package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"nlx/lox"
	"nlx/vm"
)

type runCmd struct {
	debug bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Compile and run an nlx source file" }
func (*runCmd) Usage() string {
	return `run [-debug] <path>:
  Compile the expression in path and print its value.
`
}

func (cmd *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.debug, "debug", false, "trace compiled bytecode and VM stack on every step")
}

func (cmd *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: nlx run [-debug] <path>")
		return exitUsage
	}
	return subcommands.ExitStatus(cmd.run(args[0], cmd.debug))
}

func (cmd *runCmd) run(path string, debug bool) int {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return exitNoInput
	}

	machine := vm.New()
	machine.Debug = debug

	if err := machine.Interpret(source); err != nil {
		var compileErr *lox.CompileError
		if errors.As(err, &compileErr) {
			return 65
		}
		var runtimeErr *lox.RuntimeError
		if errors.As(err, &runtimeErr) {
			return 70
		}
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return 70
	}
	return 0
}
