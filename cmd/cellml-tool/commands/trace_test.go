package commands

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cellml-modeling/cellml-go/pkg/log"
)

// readTraceEvents reads every event back from a trace file.
func readTraceEvents(t *testing.T, path string) []log.Event {
	t.Helper()

	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open trace file: %v", err)
	}
	defer reader.Close()

	var events []log.Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("failed to read trace event: %v", err)
		}
		events = append(events, event)
	}
}

func TestRunValidate_TraceFile(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "run.ctrace")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunValidate([]string{"--trace", traceFile, "../../../testdata/cellml/hodgkin_huxley.cellml"}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, exitCode, stderr.String())
	}

	events := readTraceEvents(t, traceFile)
	if len(events) == 0 {
		t.Fatal("expected trace events, got none")
	}

	first, last := events[0], events[len(events)-1]
	if first.Category != log.CategorySession || first.Session == nil || first.Session.Ended {
		t.Errorf("expected session start first, got %+v", first)
	}
	if last.Category != log.CategorySession || last.Session == nil || !last.Session.Ended {
		t.Errorf("expected session end last, got %+v", last)
	}
	for _, e := range events {
		if e.Phase != log.PhaseParse {
			t.Errorf("expected PARSE phase, got %s", e.Phase)
		}
		if e.SessionID != first.SessionID {
			t.Errorf("expected one session, got %q and %q", first.SessionID, e.SessionID)
		}
	}
}

func TestRunValidate_TraceRecordsFaults(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "run.ctrace")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunValidate([]string{"--trace", traceFile, "../../../testdata/cellml/broken.cellml"}, stdout, stderr)

	if exitCode != exitValidation {
		t.Fatalf("expected exit code %d, got %d", exitValidation, exitCode)
	}

	faults := 0
	for _, e := range readTraceEvents(t, traceFile) {
		if e.Category == log.CategoryFault {
			faults++
			if e.Fault == nil || e.Fault.Description == "" {
				t.Errorf("fault event without payload: %+v", e)
			}
		}
	}
	if faults == 0 {
		t.Error("expected fault events in trace, got none")
	}
}

func TestRunValidate_TraceVerboseEchoesToStderr(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "run.ctrace")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunValidate([]string{"--trace", traceFile, "--verbose", "../../../testdata/cellml/hodgkin_huxley.cellml"}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, exitCode)
	}

	if !strings.Contains(stderr.String(), "phase=PARSE") {
		t.Errorf("expected trace echo on stderr, got: %s", stderr.String())
	}
}

func TestRunConvert_TraceCoversBothPhases(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "run.ctrace")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunConvert([]string{"--trace", traceFile, "../../../testdata/cellml/hodgkin_huxley.cellml"}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, exitCode, stderr.String())
	}

	phases := make(map[log.Phase]int)
	for _, e := range readTraceEvents(t, traceFile) {
		phases[e.Phase]++
	}
	if phases[log.PhaseParse] == 0 {
		t.Error("expected PARSE events in trace")
	}
	if phases[log.PhasePrint] == 0 {
		t.Error("expected PRINT events in trace")
	}
}

func TestRunTrace_View(t *testing.T) {
	traceFile := writeTestTrace(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunTrace([]string{traceFile}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, exitCode, stderr.String())
	}

	output := stdout.String()
	if !strings.Contains(output, "PARSE") {
		t.Errorf("expected PARSE events in output, got: %s", output)
	}
	if !strings.Contains(output, "started") {
		t.Errorf("expected session start line, got: %s", output)
	}
	if !strings.Contains(output, "model=hodgkin_huxley") {
		t.Errorf("expected model name in output, got: %s", output)
	}
}

func TestRunTrace_FilterCategory(t *testing.T) {
	traceFile := writeTestTrace(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunTrace([]string{"--category", "session", traceFile}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, exitCode)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected start and end events only, got %d lines: %s", len(lines), stdout.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, "SESSION") {
			t.Errorf("expected SESSION category, got: %s", line)
		}
	}
}

func TestRunTrace_Stats(t *testing.T) {
	traceFile := writeTestTrace(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunTrace([]string{"--stats", traceFile}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, exitCode)
	}

	output := stdout.String()
	if !strings.Contains(output, "Sessions: 1") {
		t.Errorf("expected one session in stats, got: %s", output)
	}
	if !strings.Contains(output, "PARSE:") {
		t.Errorf("expected PARSE phase counts, got: %s", output)
	}
}

func TestRunTrace_JSONEvents(t *testing.T) {
	traceFile := writeTestTrace(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunTrace([]string{"--json", traceFile}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, exitCode)
	}

	if !strings.Contains(stdout.String(), `"phase":"PARSE"`) {
		t.Errorf("expected JSON event lines, got: %s", stdout.String())
	}
}

func TestRunTrace_UnknownPhase(t *testing.T) {
	traceFile := writeTestTrace(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunTrace([]string{"--phase", "compile", traceFile}, stdout, stderr)

	if exitCode != exitCommandError {
		t.Errorf("expected exit code %d, got %d", exitCommandError, exitCode)
	}
	if !strings.Contains(stderr.String(), "unknown phase") {
		t.Errorf("expected phase error in stderr, got: %s", stderr.String())
	}
}

func TestRunTrace_NoFile(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunTrace([]string{}, stdout, stderr)

	if exitCode != exitCommandError {
		t.Errorf("expected exit code %d, got %d", exitCommandError, exitCode)
	}
	if !strings.Contains(stderr.String(), "no trace file specified") {
		t.Errorf("expected usage error in stderr, got: %s", stderr.String())
	}
}

// writeTestTrace validates the reference model with tracing enabled and
// returns the resulting trace file path.
func writeTestTrace(t *testing.T) string {
	t.Helper()

	traceFile := filepath.Join(t.TempDir(), "run.ctrace")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunValidate([]string{"--trace", traceFile, "../../../testdata/cellml/hodgkin_huxley.cellml"}, stdout, stderr)
	if exitCode != exitSuccess {
		t.Fatalf("failed to write test trace: exit %d (stderr: %s)", exitCode, stderr.String())
	}

	return traceFile
}
