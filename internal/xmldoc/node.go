package xmldoc

// Node is an element or text node in a parsed document. Element nodes carry
// attributes and children; text nodes carry character data and report the
// type "text".
type Node struct {
	name  string
	space string
	text  string

	parent     *Node
	firstChild *Node
	lastChild  *Node
	next       *Node

	firstAttr *Attribute
	lastAttr  *Attribute

	// Raw source span of the element, used by ConvertToString.
	source     string
	start, end int64
}

// Type returns the element's local tag name, or "text" for a text node.
func (n *Node) Type() string {
	return n.name
}

// IsType reports whether the node's type equals name.
func (n *Node) IsType(name string) bool {
	return n.name == name
}

// Namespace returns the element's namespace, or the undeclared prefix it
// was written with.
func (n *Node) Namespace() string {
	return n.space
}

// FirstChild returns the node's first child, or nil.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// Next returns the node's next sibling, or nil.
func (n *Node) Next() *Node {
	return n.next
}

// Parent returns the node's parent element, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// FirstAttribute returns the node's first attribute, or nil.
func (n *Node) FirstAttribute() *Attribute {
	return n.firstAttr
}

// Attribute returns the value of the named attribute, or the empty string
// if the node has no such attribute.
func (n *Node) Attribute(name string) string {
	for a := n.firstAttr; a != nil; a = a.next {
		if a.name == name {
			return a.value
		}
	}
	return ""
}

// ConvertToString returns the raw source text covering the node: for an
// element, the input substring from its opening tag through its closing
// tag; for a text node, its character data.
func (n *Node) ConvertToString() string {
	if n.name == TextType {
		return n.text
	}
	if n.source == "" || n.end <= n.start {
		return ""
	}
	return n.source[n.start:n.end]
}

func (n *Node) appendChild(child *Node) {
	child.parent = n
	if n.lastChild == nil {
		n.firstChild = child
	} else {
		n.lastChild.next = child
	}
	n.lastChild = child
}

func (n *Node) appendAttribute(a *Attribute) {
	if n.lastAttr == nil {
		n.firstAttr = a
	} else {
		n.lastAttr.next = a
	}
	n.lastAttr = a
}

// Attribute is a single attribute on an element node. Attributes form a
// singly linked chain in document order.
type Attribute struct {
	name  string
	space string
	value string
	next  *Attribute
}

// Type returns the attribute's local name.
func (a *Attribute) Type() string {
	return a.name
}

// IsType reports whether the attribute's local name equals name.
func (a *Attribute) IsType(name string) bool {
	return a.name == name
}

// Namespace returns the attribute's namespace, or the undeclared prefix it
// was written with, or the empty string for an unprefixed attribute.
func (a *Attribute) Namespace() string {
	return a.space
}

// Value returns the attribute value.
func (a *Attribute) Value() string {
	return a.value
}

// Next returns the next attribute in the chain, or nil.
func (a *Attribute) Next() *Attribute {
	return a.next
}
