// Package cellml parses CellML XML documents into the entity graph of
// pkg/model and prints such graphs back out as canonical CellML XML.
//
// The parser never returns an error value: every structural or referential
// fault is appended to the parser's ErrorLog with a kind and, where
// possible, a back-reference to the responsible entity, and traversal
// continues so that one pass over a document yields a complete report.
//
// The printer is the deterministic inverse of the parser: a model built
// without imports or math round-trips bit-exactly through PrintModel and
// ParseModel.
package cellml
