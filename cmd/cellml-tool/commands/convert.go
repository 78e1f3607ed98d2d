package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cellml-modeling/cellml-go/pkg/cellml"
	"github.com/cellml-modeling/cellml-go/pkg/log"
)

// ConvertOptions configures the convert command.
type ConvertOptions struct {
	To     string // xml, yaml
	Output string
	Trace  string
	File   string
}

// RunConvert runs the convert command.
func RunConvert(args []string, stdout, stderr io.Writer) int {
	opts, err := parseConvertArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no input file specified")
		printConvertUsage(stderr)
		return exitCommandError
	}

	if opts.To != "xml" && opts.To != "yaml" {
		fmt.Fprintf(stderr, "Error: unknown target format %q\n", opts.To)
		printConvertUsage(stderr)
		return exitCommandError
	}

	data, err := os.ReadFile(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	var trace log.Logger
	if opts.Trace != "" {
		logger, closeTrace, err := openTraceLogger(opts.Trace, nil)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		defer func() {
			if err := closeTrace(); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
		}()
		trace = logger
	}

	parser := cellml.NewParser(cellml.FormatXML)
	if trace != nil {
		parser.SetTraceLogger(trace)
	}
	m := parser.ParseModel(string(data))

	if parser.ErrorCount() > 0 {
		fmt.Fprintf(stderr, "%s: FAILED (%d errors)\n", opts.File, parser.ErrorCount())
		for i := 0; i < parser.ErrorCount(); i++ {
			e := parser.Error(i)
			fmt.Fprintf(stderr, "  ERROR %s: %s\n", e.Kind(), e.Description())
		}
		return exitValidation
	}

	var output []byte
	switch opts.To {
	case "yaml":
		output, err = cellml.ModelYAML(m)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
	default:
		printer := cellml.NewPrinter(cellml.FormatXML)
		if trace != nil {
			printer.SetTraceLogger(trace)
		}
		output = []byte(printer.PrintModel(m))
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, output, 0o644); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", opts.Output)
		return exitSuccess
	}

	fmt.Fprint(stdout, string(output))
	return exitSuccess
}

func parseConvertArgs(args []string) (ConvertOptions, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	opts := ConvertOptions{}

	fs.StringVar(&opts.To, "to", "xml", "Target format (xml, yaml)")
	fs.StringVar(&opts.Output, "o", "", "Output file (default: stdout)")
	fs.StringVar(&opts.Output, "output", "", "Output file")
	fs.StringVar(&opts.Trace, "trace", "", "Write session trace events to this file")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	remaining := fs.Args()
	if len(remaining) > 0 {
		opts.File = remaining[0]
	}

	return opts, nil
}

func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: cellml-tool convert [options] <file>

Options:
  --to          Target format (xml, yaml) [default: xml]
  -o, --output  Output file (default: stdout)
  --trace       Write session trace events to this file

Examples:
  cellml-tool convert model.cellml
  cellml-tool convert --to yaml model.cellml
  cellml-tool convert model.cellml -o canonical.cellml`)
}
