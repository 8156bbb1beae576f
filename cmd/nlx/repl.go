package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"nlx/lox"
	"nlx/vm"
)

type replCmd struct {
	debug bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive nlx session" }
func (*replCmd) Usage() string {
	return `repl [-debug]:
  Read one expression at a time from stdin, compile it, run it, and print
  its value.
`
}

func (cmd *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.debug, "debug", false, "trace compiled bytecode and VM stack on every step")
}

func (cmd *replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return subcommands.ExitStatus(cmd.run(cmd.debug))
}

// run drives the REPL to completion. Each line read is fed to Interpret
// directly, one expression at a time — an unterminated or malformed line
// surfaces a clear compile error on the spot rather than being buffered
// against a multi-line heuristic, since this grammar has no statements or
// blocks for such buffering to wait on.
func (cmd *replCmd) run(debug bool) int {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	rl, err := readline.New("> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to start line editor: %v\n", err)
		return exitNoInput
	}
	defer rl.Close()

	machine := vm.New()
	machine.Debug = debug

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 Failed to read line: %v\n", err)
			return exitNoInput
		}

		if err := machine.Interpret([]byte(line)); err != nil {
			var compileErr *lox.CompileError
			var runtimeErr *lox.RuntimeError
			switch {
			case errors.As(err, &compileErr), errors.As(err, &runtimeErr):
				// Diagnostics were already written to stderr by the
				// component that detected them; the REPL just keeps going.
			default:
				fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			}
		}
	}
}
