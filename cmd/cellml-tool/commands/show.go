package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cellml-modeling/cellml-go/pkg/cellml"
	"github.com/cellml-modeling/cellml-go/pkg/model"
	"gopkg.in/yaml.v3"
)

// ShowOptions configures the show command.
type ShowOptions struct {
	Format string // text, json, yaml
	Trace  string
	File   string
}

// ShowOutput summarizes a parsed model for display.
type ShowOutput struct {
	File         string             `json:"file,omitempty" yaml:"file,omitempty"`
	Model        string             `json:"model" yaml:"model"`
	ID           string             `json:"id,omitempty" yaml:"id,omitempty"`
	Errors       int                `json:"errors" yaml:"errors"`
	Imports      []ImportSummary    `json:"imports,omitempty" yaml:"imports,omitempty"`
	Units        []UnitsSummary     `json:"units,omitempty" yaml:"units,omitempty"`
	Components   []ComponentSummary `json:"components,omitempty" yaml:"components,omitempty"`
	Equivalences int                `json:"equivalences" yaml:"equivalences"`
}

// ImportSummary describes one import element and the entities it provides.
type ImportSummary struct {
	Source     string   `json:"source" yaml:"source"`
	Units      []string `json:"units,omitempty" yaml:"units,omitempty"`
	Components []string `json:"components,omitempty" yaml:"components,omitempty"`
}

// UnitsSummary describes one model-level units definition.
type UnitsSummary struct {
	Name     string `json:"name" yaml:"name"`
	BaseUnit bool   `json:"base_unit,omitempty" yaml:"base_unit,omitempty"`
	Rows     int    `json:"rows" yaml:"rows"`
	Imported bool   `json:"imported,omitempty" yaml:"imported,omitempty"`
}

// ComponentSummary describes one component in the encapsulation forest.
type ComponentSummary struct {
	Name      string   `json:"name" yaml:"name"`
	Variables []string `json:"variables,omitempty" yaml:"variables,omitempty"`
	Units     int      `json:"units,omitempty" yaml:"units,omitempty"`
	Math      bool     `json:"math,omitempty" yaml:"math,omitempty"`
	Imported  bool     `json:"imported,omitempty" yaml:"imported,omitempty"`
	Parent    string   `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// RunShow runs the show command.
func RunShow(args []string, stdout, stderr io.Writer) int {
	opts, err := parseShowArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no file specified")
		printShowUsage(stderr)
		return exitCommandError
	}

	data, err := os.ReadFile(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	parser := cellml.NewParser(cellml.FormatXML)
	if opts.Trace != "" {
		trace, closeTrace, err := openTraceLogger(opts.Trace, nil)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		defer func() {
			if err := closeTrace(); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
		}()
		parser.SetTraceLogger(trace)
	}
	m := parser.ParseModel(string(data))

	output := buildShowOutput(opts.File, m, parser.ErrorCount())

	switch opts.Format {
	case "json":
		out, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(out))
	case "yaml":
		out, _ := yaml.Marshal(output)
		fmt.Fprint(stdout, string(out))
	default:
		printShowText(stdout, output)
	}

	return exitSuccess
}

func buildShowOutput(file string, m *model.Model, errorCount int) ShowOutput {
	output := ShowOutput{
		File:   file,
		Model:  m.Name(),
		ID:     m.ID(),
		Errors: errorCount,
	}

	for i := 0; i < m.ImportCount(); i++ {
		imp := m.Import(i)
		summary := ImportSummary{Source: imp.Source()}
		for j := 0; j < m.UnitsCount(); j++ {
			if u := m.Units(j); u.ImportSource() == imp {
				summary.Units = append(summary.Units, u.Name())
			}
		}
		for j := 0; j < m.ComponentCount(); j++ {
			if c := m.Component(j); c.ImportSource() == imp {
				summary.Components = append(summary.Components, c.Name())
			}
		}
		output.Imports = append(output.Imports, summary)
	}

	for i := 0; i < m.UnitsCount(); i++ {
		u := m.Units(i)
		base, set := u.BaseUnit()
		output.Units = append(output.Units, UnitsSummary{
			Name:     u.Name(),
			BaseUnit: set && base,
			Rows:     u.UnitCount(),
			Imported: u.IsImport(),
		})
	}

	for i := 0; i < m.ComponentCount(); i++ {
		appendComponentSummaries(&output, m.Component(i))
	}

	output.Equivalences = countEquivalences(m)

	return output
}

func appendComponentSummaries(output *ShowOutput, c *model.Component) {
	summary := ComponentSummary{
		Name:     c.Name(),
		Units:    c.UnitsCount(),
		Math:     c.Math() != "",
		Imported: c.IsImport(),
	}
	if p := c.Parent(); p != nil {
		summary.Parent = p.Name()
	}
	for i := 0; i < c.VariableCount(); i++ {
		summary.Variables = append(summary.Variables, c.Variable(i).Name())
	}
	output.Components = append(output.Components, summary)

	for i := 0; i < c.ComponentCount(); i++ {
		appendComponentSummaries(output, c.Component(i))
	}
}

// countEquivalences counts unordered variable pairs once each.
func countEquivalences(m *model.Model) int {
	count := 0
	var walk func(c *model.Component)
	seen := make(map[*model.Variable]bool)
	walk = func(c *model.Component) {
		for i := 0; i < c.VariableCount(); i++ {
			v := c.Variable(i)
			for j := 0; j < v.EquivalenceCount(); j++ {
				if !seen[v.EquivalentVariable(j)] {
					count++
				}
			}
			seen[v] = true
		}
		for i := 0; i < c.ComponentCount(); i++ {
			walk(c.Component(i))
		}
	}
	for i := 0; i < m.ComponentCount(); i++ {
		walk(m.Component(i))
	}
	return count
}

func printShowText(w io.Writer, output ShowOutput) {
	fmt.Fprintf(w, "File: %s\n", output.File)
	fmt.Fprintf(w, "Model: %s\n", output.Model)
	if output.ID != "" {
		fmt.Fprintf(w, "ID: %s\n", output.ID)
	}
	fmt.Fprintf(w, "Errors: %d\n", output.Errors)

	if len(output.Imports) > 0 {
		fmt.Fprintln(w, "\nImports:")
		for _, imp := range output.Imports {
			fmt.Fprintf(w, "  %s\n", imp.Source)
			if len(imp.Units) > 0 {
				fmt.Fprintf(w, "    units: %s\n", strings.Join(imp.Units, ", "))
			}
			if len(imp.Components) > 0 {
				fmt.Fprintf(w, "    components: %s\n", strings.Join(imp.Components, ", "))
			}
		}
	}

	if len(output.Units) > 0 {
		fmt.Fprintln(w, "\nUnits:")
		for _, u := range output.Units {
			var notes []string
			if u.BaseUnit {
				notes = append(notes, "base unit")
			}
			if u.Imported {
				notes = append(notes, "imported")
			}
			if u.Rows > 0 {
				notes = append(notes, fmt.Sprintf("%d rows", u.Rows))
			}
			if len(notes) > 0 {
				fmt.Fprintf(w, "  %s (%s)\n", u.Name, strings.Join(notes, ", "))
			} else {
				fmt.Fprintf(w, "  %s\n", u.Name)
			}
		}
	}

	if len(output.Components) > 0 {
		fmt.Fprintln(w, "\nComponents:")
		for _, c := range output.Components {
			name := c.Name
			if c.Parent != "" {
				name = c.Parent + " > " + c.Name
			}
			var notes []string
			if len(c.Variables) > 0 {
				notes = append(notes, fmt.Sprintf("%d variables", len(c.Variables)))
			}
			if c.Units > 0 {
				notes = append(notes, fmt.Sprintf("%d units", c.Units))
			}
			if c.Math {
				notes = append(notes, "math")
			}
			if c.Imported {
				notes = append(notes, "imported")
			}
			if len(notes) > 0 {
				fmt.Fprintf(w, "  %s (%s)\n", name, strings.Join(notes, ", "))
			} else {
				fmt.Fprintf(w, "  %s\n", name)
			}
		}
	}

	fmt.Fprintf(w, "\nEquivalences: %d\n", output.Equivalences)
}

func parseShowArgs(args []string) (ShowOptions, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	opts := ShowOptions{}

	fs.StringVar(&opts.Format, "format", "text", "Output format (text, json, yaml)")
	fs.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")
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

func printShowUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: cellml-tool show [options] <file>

Options:
  -f, --format    Output format (text, json, yaml) [default: text]
  --trace         Write session trace events to this file

Examples:
  cellml-tool show model.cellml
  cellml-tool show --format json model.cellml`)
}
