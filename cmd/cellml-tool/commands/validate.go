package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cellml-modeling/cellml-go/pkg/cellml"
	"github.com/cellml-modeling/cellml-go/pkg/log"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	JSON    bool
	Verbose bool
	Trace   string
	Files   []string
}

// RunValidate runs the validate command.
func RunValidate(args []string, stdout, stderr io.Writer) int {
	opts, err := parseValidateArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if len(opts.Files) == 0 {
		fmt.Fprintln(stderr, "Error: no files specified")
		printValidateUsage(stderr)
		return exitCommandError
	}

	var trace log.Logger
	if opts.Trace != "" {
		var echo io.Writer
		if opts.Verbose {
			echo = stderr
		}
		logger, closeTrace, err := openTraceLogger(opts.Trace, echo)
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

	hasErrors := false
	results := make(map[string]*ValidationOutput)

	for _, file := range opts.Files {
		result := validateFile(file, trace)
		results[file] = result

		if !result.Valid {
			hasErrors = true
		}

		if !opts.JSON {
			printValidationResult(stdout, file, result, opts.Verbose)
		}
	}

	if opts.JSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(stdout, string(output))
	}

	if hasErrors {
		return exitValidation
	}
	return exitSuccess
}

// ValidationOutput represents the validation result for a file.
type ValidationOutput struct {
	Valid  bool          `json:"valid"`
	Model  string        `json:"model,omitempty"`
	Errors []IssueOutput `json:"errors,omitempty"`
}

// IssueOutput represents one parse error.
type IssueOutput struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

func validateFile(path string, trace log.Logger) *ValidationOutput {
	output := &ValidationOutput{Valid: true}

	data, err := os.ReadFile(path)
	if err != nil {
		output.Valid = false
		output.Errors = append(output.Errors, IssueOutput{
			Kind:        "FILE",
			Description: err.Error(),
		})
		return output
	}

	parser := cellml.NewParser(cellml.FormatXML)
	if trace != nil {
		parser.SetTraceLogger(trace)
	}
	m := parser.ParseModel(string(data))
	output.Model = m.Name()

	for i := 0; i < parser.ErrorCount(); i++ {
		e := parser.Error(i)
		output.Errors = append(output.Errors, IssueOutput{
			Kind:        e.Kind().String(),
			Description: e.Description(),
		})
	}
	output.Valid = len(output.Errors) == 0

	return output
}

func printValidationResult(w io.Writer, file string, result *ValidationOutput, verbose bool) {
	if result.Valid {
		fmt.Fprintf(w, "%s: OK\n", file)
		return
	}

	fmt.Fprintf(w, "%s: FAILED (%d errors)\n", file, len(result.Errors))

	if verbose || !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  ERROR %s: %s\n", e.Kind, e.Description)
		}
	}
}

func parseValidateArgs(args []string) (ValidateOptions, error) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	opts := ValidateOptions{}

	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Echo trace events to stderr (with --trace)")
	fs.BoolVar(&opts.Verbose, "v", false, "Echo trace events to stderr (shorthand)")
	fs.StringVar(&opts.Trace, "trace", "", "Write session trace events to this file")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.Files = fs.Args()
	return opts, nil
}

func printValidateUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: cellml-tool validate [options] <files...>

Options:
  --json         Output results as JSON
  -v, --verbose  Echo trace events to stderr (with --trace)
  --trace        Write session trace events to this file

Examples:
  cellml-tool validate model.cellml
  cellml-tool validate --json *.cellml
  cellml-tool validate --trace run.ctrace model.cellml`)
}
