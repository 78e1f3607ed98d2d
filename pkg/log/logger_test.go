package log

import (
	"testing"
	"time"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	// Should not panic with any event type
	event := Event{
		Timestamp: time.Now(),
		SessionID: "test-session",
		Phase:     PhaseParse,
		Category:  CategoryElement,
	}

	// Test with nil payloads
	logger.Log(event)

	// Test with session payload
	event.Category = CategorySession
	event.Session = &SessionEvent{InputSize: 100}
	logger.Log(event)

	// Test with fault payload
	event.Session = nil
	event.Category = CategoryFault
	event.Fault = &FaultEvent{Kind: "MODEL", Description: "test fault"}
	logger.Log(event)
}

func TestLoggerFunc(t *testing.T) {
	var got []Event
	logger := LoggerFunc(func(e Event) { got = append(got, e) })

	logger.Log(Event{SessionID: "sess-1", Phase: PhaseParse})
	logger.Log(Event{SessionID: "sess-2", Phase: PhasePrint})

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].SessionID != "sess-1" || got[1].SessionID != "sess-2" {
		t.Errorf("events delivered out of order: %v", got)
	}
}

func TestLoggerInterfaceSatisfaction(t *testing.T) {
	// Compile-time check that NoopLogger satisfies Logger interface
	var _ Logger = NoopLogger{}
	var _ Logger = &NoopLogger{}
	var _ Logger = LoggerFunc(nil)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	// NoopLogger should be usable as zero value
	var logger NoopLogger
	logger.Log(Event{})
}
