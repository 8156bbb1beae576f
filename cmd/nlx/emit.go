package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"nlx/compiler"
	"nlx/debug"
)

type emitCmd struct {
	disassemble  bool
	dumpBytecode bool
}

func (*emitCmd) Name() string     { return "emit" }
func (*emitCmd) Synopsis() string { return "Compile a source file and dump its bytecode" }
func (*emitCmd) Usage() string {
	return `emit [-disassemble] [-dump-bytecode] <path>:
  Compile path without running it and write its bytecode representation.
`
}

func (cmd *emitCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disassemble, "disassemble", true, "write a human-readable disassembly to stdout")
	f.BoolVar(&cmd.dumpBytecode, "dump-bytecode", false, "write the raw bytecode as hex to <path>.nic, with a trailing .lox dropped from <path> first")
}

func (cmd *emitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: nlx emit [-disassemble] [-dump-bytecode] <path>")
		return subcommands.ExitStatus(exitUsage)
	}
	return subcommands.ExitStatus(cmd.run(args[0]))
}

func (cmd *emitCmd) run(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return exitNoInput
	}

	c, err := compiler.Compile(source, false)
	if err != nil {
		// Diagnostic already printed to stderr by the compiler.
		return 65
	}
	defer c.Free()

	if cmd.disassemble {
		fmt.Print(debug.DisassembleChunk(c, path))
	}

	if cmd.dumpBytecode {
		outPath := strings.TrimSuffix(path, ".lox") + ".nic"
		if err := writeHexDump(outPath, c.Code); err != nil {
			fmt.Fprintf(os.Stderr, "💥 Failed to write bytecode dump: %v\n", err)
			return 70
		}
	}

	return 0
}

func writeHexDump(path string, code []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for i, b := range code {
		if i > 0 {
			fmt.Fprint(f, " ")
		}
		fmt.Fprintf(f, "%02x", b)
	}
	fmt.Fprintln(f)
	return nil
}
