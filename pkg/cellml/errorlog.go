package cellml

import (
	"github.com/cellml-modeling/cellml-go/pkg/model"
)

// ErrorKind categorizes a parse or validation error by the part of the
// document grammar it was raised in.
type ErrorKind int

const (
	KindXML ErrorKind = iota
	KindModel
	KindComponent
	KindUnits
	KindVariable
	KindImport
	KindEncapsulation
	KindConnection
	KindGenerator
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindXML:
		return "XML"
	case KindModel:
		return "MODEL"
	case KindComponent:
		return "COMPONENT"
	case KindUnits:
		return "UNITS"
	case KindVariable:
		return "VARIABLE"
	case KindImport:
		return "IMPORT"
	case KindEncapsulation:
		return "ENCAPSULATION"
	case KindConnection:
		return "CONNECTION"
	case KindGenerator:
		return "GENERATOR"
	default:
		return "UNKNOWN"
	}
}

// Error is a single categorized fault. It carries a human-readable
// description, a kind, and at most one back-reference to the most specific
// entity responsible. Setting a back-reference replaces any previous one.
type Error struct {
	description string
	kind        ErrorKind
	entity      any
}

// Description returns the human-readable description.
func (e *Error) Description() string {
	return e.description
}

// SetDescription sets the human-readable description.
func (e *Error) SetDescription(description string) {
	e.description = description
}

// Kind returns the error kind.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// SetKind sets the error kind.
func (e *Error) SetKind(kind ErrorKind) {
	e.kind = kind
}

// SetModel attributes the error to a model.
func (e *Error) SetModel(m *model.Model) {
	e.entity = m
}

// Model returns the model the error is attributed to, or nil.
func (e *Error) Model() *model.Model {
	m, _ := e.entity.(*model.Model)
	return m
}

// SetComponent attributes the error to a component.
func (e *Error) SetComponent(c *model.Component) {
	e.entity = c
}

// Component returns the component the error is attributed to, or nil.
func (e *Error) Component() *model.Component {
	c, _ := e.entity.(*model.Component)
	return c
}

// SetUnits attributes the error to a units definition.
func (e *Error) SetUnits(u *model.Units) {
	e.entity = u
}

// Units returns the units definition the error is attributed to, or nil.
func (e *Error) Units() *model.Units {
	u, _ := e.entity.(*model.Units)
	return u
}

// SetVariable attributes the error to a variable.
func (e *Error) SetVariable(v *model.Variable) {
	e.entity = v
}

// Variable returns the variable the error is attributed to, or nil.
func (e *Error) Variable() *model.Variable {
	v, _ := e.entity.(*model.Variable)
	return v
}

// SetImport attributes the error to an import record.
func (e *Error) SetImport(i *model.Import) {
	e.entity = i
}

// Import returns the import record the error is attributed to, or nil.
func (e *Error) Import() *model.Import {
	i, _ := e.entity.(*model.Import)
	return i
}

// ErrorLog is an ordered, append-only collection of Errors. It never
// deduplicates and never reorders; successive parses on the same owner
// append to the same log unless the caller clears it.
type ErrorLog struct {
	errors []*Error
}

// AddError appends an error to the log. Nil errors are ignored.
func (l *ErrorLog) AddError(e *Error) {
	if e == nil {
		return
	}
	l.errors = append(l.errors, e)
}

// ErrorCount returns the number of logged errors.
func (l *ErrorLog) ErrorCount() int {
	return len(l.errors)
}

// Error returns the error at index i, or nil if i is out of range.
func (l *ErrorLog) Error(i int) *Error {
	if i < 0 || i >= len(l.errors) {
		return nil
	}
	return l.errors[i]
}

// ClearErrors removes all logged errors.
func (l *ErrorLog) ClearErrors() {
	l.errors = nil
}
