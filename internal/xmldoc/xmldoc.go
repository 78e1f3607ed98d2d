// Package xmldoc provides a read-only DOM over encoding/xml for the CellML
// parser: a document with recorded syntax errors, linked element/text nodes
// with attribute chains, and recovery of the raw source text of a subtree.
package xmldoc

import (
	"encoding/xml"
	"io"
	"strings"
)

// TextType is the node type reported for character data nodes.
const TextType = "text"

// Document is the result of parsing an XML string. Syntax faults are
// recorded rather than returned; a partially built tree remains available
// after a mid-document error.
type Document struct {
	root   *Node
	errors []string
}

// Parse builds a Document from the given XML string. It never fails: syntax
// errors are recorded on the document and the tree built up to the point of
// failure is kept.
func Parse(input string) *Document {
	doc := &Document{}
	dec := xml.NewDecoder(strings.NewReader(input))

	var current *Node
	ignoreDepth := 0
	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			doc.errors = append(doc.errors, err.Error())
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if ignoreDepth > 0 {
				ignoreDepth++
				continue
			}
			if current == nil && doc.root != nil {
				doc.errors = append(doc.errors,
					"extra content at the end of the document: element '"+t.Name.Local+"' ignored")
				ignoreDepth = 1
				continue
			}
			node := &Node{name: t.Name.Local, space: t.Name.Space, start: start}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				node.appendAttribute(&Attribute{
					name:  a.Name.Local,
					space: a.Name.Space,
					value: a.Value,
				})
			}
			if current == nil {
				doc.root = node
			} else {
				current.appendChild(node)
			}
			current = node

		case xml.EndElement:
			if ignoreDepth > 0 {
				ignoreDepth--
				continue
			}
			if current != nil {
				current.end = dec.InputOffset()
				current.source = input
				current = current.parent
			}

		case xml.CharData:
			if ignoreDepth > 0 || current == nil {
				continue
			}
			// Merge adjacent character data into a single text node.
			if last := current.lastChild; last != nil && last.name == TextType {
				last.text += string(t)
				continue
			}
			current.appendChild(&Node{name: TextType, text: string(t)})

		case xml.Comment, xml.ProcInst, xml.Directive:
			// Dropped from the tree.
		}
	}

	return doc
}

// RootNode returns the document's root element, or nil if no root element
// was parsed.
func (d *Document) RootNode() *Node {
	return d.root
}

// ErrorCount returns the number of recorded syntax errors.
func (d *Document) ErrorCount() int {
	return len(d.errors)
}

// Error returns the syntax error at index i, or the empty string if i is
// out of range.
func (d *Document) Error(i int) string {
	if i < 0 || i >= len(d.errors) {
		return ""
	}
	return d.errors[i]
}
