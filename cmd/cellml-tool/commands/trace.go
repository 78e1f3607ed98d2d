package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/cellml-modeling/cellml-go/pkg/log"
)

// openTraceLogger opens a trace file sink for a session. When echo is
// non-nil, events are additionally mirrored to it as slog text lines.
// The returned close function reports the first write error, if any.
func openTraceLogger(path string, echo io.Writer) (log.Logger, func() error, error) {
	fileLogger, err := log.NewFileLogger(path)
	if err != nil {
		return nil, nil, err
	}

	if echo == nil {
		return fileLogger, fileLogger.Close, nil
	}

	handler := slog.NewTextHandler(echo, &slog.HandlerOptions{Level: slog.LevelDebug})
	multi := log.NewMultiLogger(fileLogger, log.NewSlogAdapter(slog.New(handler)))
	return multi, fileLogger.Close, nil
}

// TraceOptions configures the trace command.
type TraceOptions struct {
	Session  string
	Phase    string
	Category string
	Model    string
	Element  string
	Stats    bool
	JSON     bool
	File     string
}

// RunTrace runs the trace command, reading events back from a trace file.
func RunTrace(args []string, stdout, stderr io.Writer) int {
	opts, err := parseTraceArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no trace file specified")
		printTraceUsage(stderr)
		return exitCommandError
	}

	filter, err := buildTraceFilter(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	reader, err := log.NewFilteredReader(opts.File, filter)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer reader.Close()

	if opts.Stats {
		return printTraceStats(reader, opts, stdout, stderr)
	}
	return printTraceEvents(reader, opts, stdout, stderr)
}

func buildTraceFilter(opts TraceOptions) (log.Filter, error) {
	filter := log.Filter{
		SessionID: opts.Session,
		Model:     opts.Model,
		Element:   opts.Element,
	}

	if opts.Phase != "" {
		phase, err := log.ParsePhase(opts.Phase)
		if err != nil {
			return filter, err
		}
		filter.Phase = &phase
	}
	if opts.Category != "" {
		category, err := log.ParseCategory(opts.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &category
	}

	return filter, nil
}

func printTraceEvents(reader *log.Reader, opts TraceOptions, stdout, stderr io.Writer) int {
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return exitSuccess
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: reading %s: %v\n", opts.File, err)
			return exitCommandError
		}

		if opts.JSON {
			out, _ := json.Marshal(traceEventOutput(event))
			fmt.Fprintln(stdout, string(out))
			continue
		}
		fmt.Fprintln(stdout, formatTraceEvent(event))
	}
}

// TraceEventOutput is the JSON shape of one replayed trace event.
type TraceEventOutput struct {
	Timestamp string `json:"timestamp"`
	Session   string `json:"session"`
	Phase     string `json:"phase"`
	Category  string `json:"category"`
	Model     string `json:"model,omitempty"`
	Element   string `json:"element,omitempty"`
	Entity    string `json:"entity,omitempty"`
	Ended     bool   `json:"ended,omitempty"`
	InputSize int    `json:"input_size,omitempty"`
	Errors    int    `json:"errors,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

func traceEventOutput(event log.Event) TraceEventOutput {
	out := TraceEventOutput{
		Timestamp: event.Timestamp.Format("2006-01-02T15:04:05.000000000Z07:00"),
		Session:   event.SessionID,
		Phase:     event.Phase.String(),
		Category:  event.Category.String(),
		Model:     event.Model,
		Element:   event.Element,
		Entity:    event.Entity,
	}
	if event.Session != nil {
		out.Ended = event.Session.Ended
		out.InputSize = event.Session.InputSize
		out.Errors = event.Session.ErrorCount
	}
	if event.Fault != nil {
		out.Kind = event.Fault.Kind
		out.Detail = event.Fault.Description
	}
	return out
}

func formatTraceEvent(event log.Event) string {
	line := fmt.Sprintf("%s %-5s %-7s session=%s",
		event.Timestamp.Format("15:04:05.000000"),
		event.Phase, event.Category, shortSessionID(event.SessionID))

	if event.Model != "" {
		line += " model=" + event.Model
	}
	if event.Element != "" {
		line += " element=" + event.Element
	}
	if event.Entity != "" {
		line += " entity=" + event.Entity
	}

	switch {
	case event.Session != nil && event.Session.Ended:
		line += fmt.Sprintf(" ended errors=%d", event.Session.ErrorCount)
	case event.Session != nil:
		line += fmt.Sprintf(" started input_size=%d", event.Session.InputSize)
	case event.Fault != nil:
		line += fmt.Sprintf(" kind=%s detail=%q", event.Fault.Kind, event.Fault.Description)
	}

	return line
}

// shortSessionID keeps the first UUID group so lines stay readable.
func shortSessionID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// TraceStatsOutput summarizes a trace file.
type TraceStatsOutput struct {
	Events   int            `json:"events"`
	Sessions int            `json:"sessions"`
	Faults   int            `json:"faults"`
	Phases   map[string]int `json:"phases,omitempty"`
	Elements map[string]int `json:"elements,omitempty"`
}

func printTraceStats(reader *log.Reader, opts TraceOptions, stdout, stderr io.Writer) int {
	stats := TraceStatsOutput{
		Phases:   make(map[string]int),
		Elements: make(map[string]int),
	}
	sessions := make(map[string]bool)

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: reading %s: %v\n", opts.File, err)
			return exitCommandError
		}

		stats.Events++
		stats.Phases[event.Phase.String()]++
		sessions[event.SessionID] = true
		if event.Category == log.CategoryFault {
			stats.Faults++
		}
		if event.Element != "" {
			stats.Elements[event.Element]++
		}
	}
	stats.Sessions = len(sessions)

	if opts.JSON {
		out, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Fprintln(stdout, string(out))
		return exitSuccess
	}

	fmt.Fprintf(stdout, "Events: %d\n", stats.Events)
	fmt.Fprintf(stdout, "Sessions: %d\n", stats.Sessions)
	fmt.Fprintf(stdout, "Faults: %d\n", stats.Faults)

	if len(stats.Phases) > 0 {
		fmt.Fprintln(stdout, "\nPhases:")
		for _, name := range sortedKeys(stats.Phases) {
			fmt.Fprintf(stdout, "  %s: %d\n", name, stats.Phases[name])
		}
	}
	if len(stats.Elements) > 0 {
		fmt.Fprintln(stdout, "\nElements:")
		for _, name := range sortedKeys(stats.Elements) {
			fmt.Fprintf(stdout, "  %s: %d\n", name, stats.Elements[name])
		}
	}

	return exitSuccess
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseTraceArgs(args []string) (TraceOptions, error) {
	fs := flag.NewFlagSet("trace", flag.ContinueOnError)
	opts := TraceOptions{}

	fs.StringVar(&opts.Session, "session", "", "Filter by session ID")
	fs.StringVar(&opts.Phase, "phase", "", "Filter by phase (parse, print)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (session, element, fault)")
	fs.StringVar(&opts.Model, "model", "", "Filter by model name")
	fs.StringVar(&opts.Element, "element", "", "Filter by element type")
	fs.BoolVar(&opts.Stats, "stats", false, "Print summary statistics instead of events")
	fs.BoolVar(&opts.JSON, "json", false, "Output as JSON")

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

func printTraceUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: cellml-tool trace [options] <file.ctrace>

Options:
  --session     Filter by session ID
  --phase       Filter by phase (parse, print)
  --category    Filter by category (session, element, fault)
  --model       Filter by model name
  --element     Filter by element type
  --stats       Print summary statistics instead of events
  --json        Output as JSON

Examples:
  cellml-tool trace run.ctrace
  cellml-tool trace --category fault run.ctrace
  cellml-tool trace --stats run.ctrace`)
}
