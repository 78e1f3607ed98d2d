package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestTraceFile(t *testing.T, events []Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ctrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test trace: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), SessionID: "sess-1", Phase: PhaseParse, Category: CategorySession},
		{Timestamp: time.Now(), SessionID: "sess-2", Phase: PhaseParse, Category: CategoryElement},
		{Timestamp: time.Now(), SessionID: "sess-3", Phase: PhasePrint, Category: CategorySession},
	}

	path := createTestTraceFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}

	// Verify order
	if read[0].SessionID != "sess-1" {
		t.Errorf("first event SessionID = %q, want %q", read[0].SessionID, "sess-1")
	}
	if read[2].SessionID != "sess-3" {
		t.Errorf("last event SessionID = %q, want %q", read[2].SessionID, "sess-3")
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.ctrace")

	// Create empty file
	logger, _ := NewFileLogger(path)
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderHandlesExhaustedFile(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), SessionID: "sess-1", Phase: PhaseParse, Category: CategorySession},
	}

	path := createTestTraceFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	// Read first event
	_, err = reader.Next()
	if err != nil {
		t.Fatalf("first Next failed: %v", err)
	}

	// Second read should return EOF
	_, err = reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF after all events, got %v", err)
	}
}

func TestReaderFilterBySessionID(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), SessionID: "sess-A", Phase: PhaseParse, Category: CategorySession},
		{Timestamp: time.Now(), SessionID: "sess-B", Phase: PhaseParse, Category: CategoryElement},
		{Timestamp: time.Now(), SessionID: "sess-A", Phase: PhaseParse, Category: CategoryFault},
		{Timestamp: time.Now(), SessionID: "sess-C", Phase: PhasePrint, Category: CategorySession},
	}

	path := createTestTraceFile(t, events)

	filter := Filter{SessionID: "sess-A"}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.SessionID != "sess-A" {
			t.Errorf("event has SessionID=%q, want %q", e.SessionID, "sess-A")
		}
	}
}

func TestReaderFilterByCategory(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), SessionID: "sess-1", Phase: PhaseParse, Category: CategorySession},
		{Timestamp: time.Now(), SessionID: "sess-1", Phase: PhaseParse, Category: CategoryFault},
		{Timestamp: time.Now(), SessionID: "sess-1", Phase: PhaseParse, Category: CategoryFault},
		{Timestamp: time.Now(), SessionID: "sess-1", Phase: PhaseParse, Category: CategoryElement},
	}

	path := createTestTraceFile(t, events)

	cat := CategoryFault
	filter := Filter{Category: &cat}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.Category != CategoryFault {
			t.Errorf("event has Category=%v, want %v", e.Category, CategoryFault)
		}
	}
}

func TestReaderFilterByTimeRange(t *testing.T) {
	baseTime := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)

	events := []Event{
		{Timestamp: baseTime.Add(-1 * time.Hour), SessionID: "sess-1", Phase: PhaseParse, Category: CategorySession},
		{Timestamp: baseTime, SessionID: "sess-2", Phase: PhaseParse, Category: CategoryElement},
		{Timestamp: baseTime.Add(30 * time.Minute), SessionID: "sess-3", Phase: PhaseParse, Category: CategoryFault},
		{Timestamp: baseTime.Add(2 * time.Hour), SessionID: "sess-4", Phase: PhasePrint, Category: CategorySession},
	}

	path := createTestTraceFile(t, events)

	start := baseTime.Add(-5 * time.Minute)
	end := baseTime.Add(1 * time.Hour)
	filter := Filter{
		TimeStart: &start,
		TimeEnd:   &end,
	}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2 (events within time range)", len(read))
	}

	// Verify it's the middle two events
	if read[0].SessionID != "sess-2" {
		t.Errorf("first event SessionID = %q, want %q", read[0].SessionID, "sess-2")
	}
	if read[1].SessionID != "sess-3" {
		t.Errorf("second event SessionID = %q, want %q", read[1].SessionID, "sess-3")
	}
}

func TestReaderFilterByPhase(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), SessionID: "sess-1", Phase: PhaseParse, Category: CategorySession},
		{Timestamp: time.Now(), SessionID: "sess-2", Phase: PhasePrint, Category: CategorySession},
		{Timestamp: time.Now(), SessionID: "sess-3", Phase: PhaseParse, Category: CategoryElement},
		{Timestamp: time.Now(), SessionID: "sess-4", Phase: PhasePrint, Category: CategoryElement},
	}

	path := createTestTraceFile(t, events)

	phase := PhasePrint
	filter := Filter{Phase: &phase}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.Phase != PhasePrint {
			t.Errorf("event has Phase=%v, want %v", e.Phase, PhasePrint)
		}
	}
}

func TestReaderCombinedFilters(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), SessionID: "sess-A", Phase: PhaseParse, Category: CategorySession},
		{Timestamp: time.Now(), SessionID: "sess-A", Phase: PhasePrint, Category: CategoryFault},
		{Timestamp: time.Now(), SessionID: "sess-B", Phase: PhaseParse, Category: CategoryFault},
		{Timestamp: time.Now(), SessionID: "sess-A", Phase: PhaseParse, Category: CategoryFault},
	}

	path := createTestTraceFile(t, events)

	phase := PhaseParse
	cat := CategoryFault
	filter := Filter{
		SessionID: "sess-A",
		Phase:     &phase,
		Category:  &cat,
	}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	// Only the last event matches all criteria
	if len(read) != 1 {
		t.Fatalf("got %d events, want 1", len(read))
	}

	if read[0].SessionID != "sess-A" || read[0].Phase != PhaseParse || read[0].Category != CategoryFault {
		t.Error("event doesn't match all filter criteria")
	}
}
