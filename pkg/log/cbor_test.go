package log

import (
	"testing"
	"time"
)

func TestEventCBORRoundTrip(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456789, time.UTC)
	original := Event{
		Timestamp: ts,
		SessionID: "abc12345-def6-7890-abcd-ef1234567890",
		Phase:     PhaseParse,
		Category:  CategoryElement,
		Model:     "hodgkin_huxley",
		Element:   "component",
		Entity:    "membrane",
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	// Compare fields
	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, original.Timestamp)
	}
	if decoded.SessionID != original.SessionID {
		t.Errorf("SessionID: got %q, want %q", decoded.SessionID, original.SessionID)
	}
	if decoded.Phase != original.Phase {
		t.Errorf("Phase: got %v, want %v", decoded.Phase, original.Phase)
	}
	if decoded.Category != original.Category {
		t.Errorf("Category: got %v, want %v", decoded.Category, original.Category)
	}
	if decoded.Model != original.Model {
		t.Errorf("Model: got %q, want %q", decoded.Model, original.Model)
	}
	if decoded.Element != original.Element {
		t.Errorf("Element: got %q, want %q", decoded.Element, original.Element)
	}
	if decoded.Entity != original.Entity {
		t.Errorf("Entity: got %q, want %q", decoded.Entity, original.Entity)
	}
}

func TestSessionEventCBORRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		session *SessionEvent
	}{
		{
			name:    "start",
			session: &SessionEvent{InputSize: 4096},
		},
		{
			name:    "end",
			session: &SessionEvent{Ended: true, ErrorCount: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := Event{
				Timestamp: time.Now(),
				SessionID: "sess-123",
				Phase:     PhaseParse,
				Category:  CategorySession,
				Session:   tt.session,
			}

			data, err := EncodeEvent(original)
			if err != nil {
				t.Fatalf("EncodeEvent failed: %v", err)
			}

			decoded, err := DecodeEvent(data)
			if err != nil {
				t.Fatalf("DecodeEvent failed: %v", err)
			}

			if decoded.Session == nil {
				t.Fatal("Session is nil")
			}
			if decoded.Session.Ended != tt.session.Ended {
				t.Errorf("Session.Ended: got %v, want %v", decoded.Session.Ended, tt.session.Ended)
			}
			if decoded.Session.InputSize != tt.session.InputSize {
				t.Errorf("Session.InputSize: got %d, want %d", decoded.Session.InputSize, tt.session.InputSize)
			}
			if decoded.Session.ErrorCount != tt.session.ErrorCount {
				t.Errorf("Session.ErrorCount: got %d, want %d", decoded.Session.ErrorCount, tt.session.ErrorCount)
			}
		})
	}
}

func TestFaultEventCBORRoundTrip(t *testing.T) {
	original := Event{
		Timestamp: time.Now(),
		SessionID: "sess-123",
		Phase:     PhaseParse,
		Category:  CategoryFault,
		Model:     "bad_model",
		Element:   "units",
		Fault: &FaultEvent{
			Kind:        "UNITS",
			Description: "Units 'fahrenheitish' has an invalid attribute 'temperature'.",
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.Fault == nil {
		t.Fatal("Fault is nil")
	}
	if decoded.Fault.Kind != original.Fault.Kind {
		t.Errorf("Fault.Kind: got %q, want %q", decoded.Fault.Kind, original.Fault.Kind)
	}
	if decoded.Fault.Description != original.Fault.Description {
		t.Errorf("Fault.Description: got %q, want %q", decoded.Fault.Description, original.Fault.Description)
	}
}

func TestEventCBORUsesIntegerKeys(t *testing.T) {
	event := Event{
		Timestamp: time.Now(),
		SessionID: "sess-123",
		Phase:     PhaseParse,
		Category:  CategoryElement,
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	// Decode to generic map and verify keys are integers
	var rawMap map[uint64]any
	if err := traceDec.Unmarshal(data, &rawMap); err != nil {
		t.Fatalf("failed to decode as map: %v", err)
	}

	// Should have integer keys 1, 2, 3, 4
	expectedKeys := []uint64{1, 2, 3, 4}
	for _, key := range expectedKeys {
		if _, ok := rawMap[key]; !ok {
			t.Errorf("expected integer key %d not found in encoded data", key)
		}
	}

	// Verify no string keys
	var stringMap map[string]any
	if err := traceDec.Unmarshal(data, &stringMap); err == nil && len(stringMap) > 0 {
		t.Error("encoded data contains string keys, expected integer keys only")
	}
}
