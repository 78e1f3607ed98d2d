// Package model implements the CellML entity graph.
//
// # Entity Hierarchy
//
// A document is represented as a tree of owned entities:
//
//	Model
//	├── Import (source document references)
//	├── Units
//	│   └── Unit (factor rows)
//	└── Component
//	    ├── Variable
//	    ├── Units (component-local definitions)
//	    └── Component (encapsulated children)
//
// Every entity carries an optional name and id. Named components, units and
// variables added to an owner replace any existing entity of that kind with
// the same name in place; unnamed ones, and all imports, append. Ownership is single-parented: adding a component
// to a new parent detaches it from the old one.
//
// # Equivalence
//
// Variables participate in an undirected equivalence relation built with
// AddEquivalence. The relation is symmetric and free of duplicates; a
// variable is never equivalent to itself.
//
// # Imports
//
// Components and units may be marked as imported by pointing them at an
// Import entity together with the name of the referenced entity in the
// source document. Import resolution is out of scope for this package; the
// reference is carried as data.
//
// The graph performs no locking. Callers that share a Model across
// goroutines must serialize access themselves.
package model
