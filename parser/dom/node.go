package dom

import (
	"golang.org/x/net/html/atom"
)

// NodeType is the kind of a node held by a Document.
type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case DocumentNode:
		return "document"
	case DocumentTypeNode:
		return "doctype"
	case DocumentFragmentNode:
		return "fragment"
	}
	return "invalid"
}

// Namespace identifies the namespace of an element or attribute.
type Namespace uint8

const (
	// Nons is the null namespace, used by most attributes.
	Nons Namespace = iota
	Htmlns
	Mathmlns
	Svgns
	Xlinkns
	Xmlns
	Xmlnsns
)

var namespaceURIs = [...]string{
	Nons:     "",
	Htmlns:   "http://www.w3.org/1999/xhtml",
	Mathmlns: "http://www.w3.org/1998/Math/MathML",
	Svgns:    "http://www.w3.org/2000/svg",
	Xlinkns:  "http://www.w3.org/1999/xlink",
	Xmlns:    "http://www.w3.org/XML/1998/namespace",
	Xmlnsns:  "http://www.w3.org/2000/xmlns/",
}

// URI returns the namespace URI.
func (ns Namespace) URI() string {
	if int(ns) < len(namespaceURIs) {
		return namespaceURIs[ns]
	}
	return ""
}

// Prefix returns the short name used for the namespace in html5lib tree dumps.
func (ns Namespace) Prefix() string {
	switch ns {
	case Mathmlns:
		return "math"
	case Svgns:
		return "svg"
	case Xlinkns:
		return "xlink"
	case Xmlns:
		return "xml"
	case Xmlnsns:
		return "xmlns"
	}
	return ""
}

// Attribute is a single name/value pair of an element. Namespace is Nons for
// everything except the adjusted foreign attributes (xlink:href and friends).
type Attribute struct {
	Namespace Namespace
	Prefix    string
	Name      string
	Value     string
}

// QuirksMode is the compatibility mode selected from the DOCTYPE.
type QuirksMode uint8

const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

func (q QuirksMode) String() string {
	switch q {
	case LimitedQuirks:
		return "limited-quirks"
	case Quirks:
		return "quirks"
	}
	return "no-quirks"
}

// NodeID is a stable handle to a node inside a Document. Handles stay valid
// when the node is detached and reattached elsewhere in the tree.
type NodeID uint32

// Nil is the zero handle. It never refers to a node.
const Nil NodeID = 0

// Node is one entry of the arena. Parent is a back-reference used for
// traversal only; a node is owned by the Document.
type Node struct {
	Type     NodeType
	Parent   NodeID
	Children []NodeID

	// Name is the local name of an element or the name of a doctype.
	Name      string
	Atom      atom.Atom
	Namespace Namespace
	Attr      []Attribute

	// Data holds the character data of text and comment nodes.
	Data string

	PublicID string
	SystemID string

	// Template is the contents fragment of an HTML template element.
	Template NodeID
}

// Is reports whether n is an element with the given atom in the given namespace.
func (n *Node) Is(ns Namespace, a atom.Atom) bool {
	return n.Type == ElementNode && n.Namespace == ns && n.Atom == a && a != 0
}

// IsHTML reports whether n is an HTML element with one of the given atoms.
func (n *Node) IsHTML(atoms ...atom.Atom) bool {
	if n.Type != ElementNode || n.Namespace != Htmlns {
		return false
	}
	for _, a := range atoms {
		if n.Atom == a {
			return true
		}
	}
	return false
}

// AttrValue returns the value of the first attribute with the given name in
// the null namespace.
func (n *Node) AttrValue(name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == Nons && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
