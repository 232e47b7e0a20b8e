// Package main provides the CLI entrypoint for fromrow-generator.
//
// fromrow-generator is a Go codegen tool that:
//   - Parses Go packages (AST + go/types) to find records marked with
//     //fromrow:generate or listed in fromrow.yaml
//   - Resolves every field to a result column
//   - Generates FromRow and RowColumns methods next to each record
//   - Checks a live query's columns against a record
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

const usage = `fromrow-generator - generate FromRow methods for Go records

Usage:
  fromrow-generator <command> [flags]

Commands:
  gen      generate *_fromrow.go files
  analyze  print the resolved columns of every record
  check    run a query and verify its columns cover a record

Run "fromrow-generator <command> --help" for the flags of a command.
`

// exit codes
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

type command func(args []string, stdout, stderr io.Writer) int

var commands = map[string]command{
	"gen":     runGen,
	"analyze": runAnalyze,
	"check":   runCheck,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	switch args[0] {
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}

	return cmd(args[1:], stdout, stderr)
}

// parseFlags parses a command's flags; done is set when the command must
// return code without running.
func parseFlags(fs *pflag.FlagSet, args []string, stderr io.Writer) (code int, done bool) {
	err := fs.Parse(args)

	switch {
	case errors.Is(err, pflag.ErrHelp):
		return exitOK, true
	case err != nil:
		return exitUsage, true
	case fs.NArg() > 0:
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return exitUsage, true
	default:
		return exitOK, false
	}
}
