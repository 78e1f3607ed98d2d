package log

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a single trace event within a parse or print session.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Phase indicates whether the session is parsing or printing.
	Phase Phase `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Model is the name of the model being processed (may be empty
	// before the model attributes have been read).
	Model string `cbor:"5,keyasint,omitempty"`

	// Element is the document element type being handled.
	Element string `cbor:"6,keyasint,omitempty"`

	// Entity is the name of the entity built from the element.
	Entity string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Session *SessionEvent `cbor:"8,keyasint,omitempty"` // Session start/end
	Fault   *FaultEvent   `cbor:"9,keyasint,omitempty"` // Error log entries
}

// Phase indicates which direction the session runs.
type Phase uint8

const (
	// PhaseParse indicates a document-to-model session.
	PhaseParse Phase = 0
	// PhasePrint indicates a model-to-document session.
	PhasePrint Phase = 1
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseParse:
		return "PARSE"
	case PhasePrint:
		return "PRINT"
	default:
		return "UNKNOWN"
	}
}

// ParsePhase converts a phase name (as produced by String, case
// insensitive) back to its value.
func ParsePhase(s string) (Phase, error) {
	switch strings.ToUpper(s) {
	case "PARSE":
		return PhaseParse, nil
	case "PRINT":
		return PhasePrint, nil
	default:
		return 0, fmt.Errorf("unknown phase %q", s)
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategorySession indicates a session boundary (start or end).
	CategorySession Category = 0
	// CategoryElement indicates a document element being handled.
	CategoryElement Category = 1
	// CategoryFault indicates an entry added to the error log.
	CategoryFault Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySession:
		return "SESSION"
	case CategoryElement:
		return "ELEMENT"
	case CategoryFault:
		return "FAULT"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory converts a category name (as produced by String, case
// insensitive) back to its value.
func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(s) {
	case "SESSION":
		return CategorySession, nil
	case "ELEMENT":
		return CategoryElement, nil
	case "FAULT":
		return CategoryFault, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}

// SessionEvent captures a session boundary.
type SessionEvent struct {
	// Ended is false for the start event and true for the end event.
	Ended bool `cbor:"1,keyasint,omitempty"`

	// InputSize is the input length in bytes (start of a parse session).
	InputSize int `cbor:"2,keyasint,omitempty"`

	// ErrorCount is the size of the error log at session end.
	ErrorCount int `cbor:"3,keyasint,omitempty"`
}

// FaultEvent mirrors one entry added to the session's error log.
type FaultEvent struct {
	// Kind is the error kind name (XML, MODEL, UNITS, ...).
	Kind string `cbor:"1,keyasint"`

	// Description is the error description.
	Description string `cbor:"2,keyasint"`
}
