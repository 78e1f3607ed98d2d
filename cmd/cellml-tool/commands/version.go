package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/cellml-modeling/cellml-go/pkg/version"
)

// VersionOptions configures the version command.
type VersionOptions struct {
	JSON bool
}

// VersionOutput describes one supported specification version.
type VersionOutput struct {
	Version   string `json:"version"`
	Namespace string `json:"namespace"`
	Emitted   bool   `json:"emitted"`
}

// RunVersion runs the version command.
func RunVersion(args []string, stdout, stderr io.Writer) int {
	opts, err := parseVersionArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	versions, err := version.AvailableSpecs()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	var outputs []VersionOutput
	for _, ver := range versions {
		spec, err := version.LoadSpec(ver)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		outputs = append(outputs, VersionOutput{
			Version:   spec.Version,
			Namespace: spec.Namespace,
			Emitted:   spec.Emitted,
		})
	}

	if opts.JSON {
		out, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Fprintln(stdout, string(out))
		return exitSuccess
	}

	fmt.Fprintln(stdout, "Supported CellML specification versions:")
	for _, v := range outputs {
		marker := "input only"
		if v.Emitted {
			marker = "emitted"
		}
		fmt.Fprintf(stdout, "  %s  %s  (%s)\n", v.Version, v.Namespace, marker)
	}
	return exitSuccess
}

func parseVersionArgs(args []string) (VersionOptions, error) {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	opts := VersionOptions{}

	fs.BoolVar(&opts.JSON, "json", false, "Output as JSON")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	return opts, nil
}
