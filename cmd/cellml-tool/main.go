// cellml-tool is a CLI tool for CellML model validation, inspection, and
// conversion.
package main

import (
	"fmt"
	"os"

	"github.com/cellml-modeling/cellml-go/cmd/cellml-tool/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "validate":
		exitCode = commands.RunValidate(args, os.Stdout, os.Stderr)
	case "show":
		exitCode = commands.RunShow(args, os.Stdout, os.Stderr)
	case "convert":
		exitCode = commands.RunConvert(args, os.Stdout, os.Stderr)
	case "trace":
		exitCode = commands.RunTrace(args, os.Stdout, os.Stderr)
	case "version", "-v", "--version":
		exitCode = commands.RunVersion(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`cellml-tool - CellML model validation and conversion tool

Usage:
  cellml-tool <command> [options] [files...]

Commands:
  validate   Parse CellML files and report every issue found
  show       Display a summary of a parsed model
  convert    Reprint a model in canonical form (XML or YAML)
  trace      Replay or summarize a session trace file
  version    List the supported CellML specification versions

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  cellml-tool validate model.cellml
  cellml-tool validate --json *.cellml
  cellml-tool show --format yaml model.cellml
  cellml-tool convert model.cellml -o canonical.cellml
  cellml-tool convert --to yaml model.cellml
  cellml-tool validate --trace run.ctrace model.cellml
  cellml-tool trace --stats run.ctrace

Run validate, show, convert, or trace without a file argument to print its
usage; the commands do not accept a --help flag.`)
}
