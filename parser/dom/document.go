package dom

import (
	"github.com/pkg/errors"
	"golang.org/x/net/html/atom"
)

// Document is the node arena. It owns every node created while parsing, and
// all tree structure is expressed through NodeID handles.
type Document struct {
	nodes []*Node
	Mode  QuirksMode
}

// NewDocument creates an arena holding only the Document root node.
func NewDocument() *Document {
	d := &Document{nodes: []*Node{nil}}
	d.add(&Node{Type: DocumentNode})
	return d
}

// Root returns the handle of the Document node.
func (d *Document) Root() NodeID {
	return 1
}

// Len returns the number of nodes allocated in the arena, attached or not.
func (d *Document) Len() int {
	return len(d.nodes) - 1
}

// Node returns the node behind id. It panics on an invalid handle.
func (d *Document) Node(id NodeID) *Node {
	if id == Nil || int(id) >= len(d.nodes) {
		panic(errors.Errorf("dom: invalid node handle %d", id))
	}
	return d.nodes[id]
}

func (d *Document) add(n *Node) NodeID {
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

// CreateElement allocates a detached element. HTML template elements get an
// empty contents fragment.
func (d *Document) CreateElement(name string, ns Namespace, attrs []Attribute) NodeID {
	n := &Node{
		Type:      ElementNode,
		Name:      name,
		Atom:      atom.Lookup([]byte(name)),
		Namespace: ns,
		Attr:      attrs,
	}
	id := d.add(n)
	if ns == Htmlns && n.Atom == atom.Template {
		n.Template = d.add(&Node{Type: DocumentFragmentNode})
	}
	return id
}

// CreateText allocates a detached text node.
func (d *Document) CreateText(data string) NodeID {
	return d.add(&Node{Type: TextNode, Data: data})
}

// CreateComment allocates a detached comment node.
func (d *Document) CreateComment(data string) NodeID {
	return d.add(&Node{Type: CommentNode, Data: data})
}

// CreateDoctype allocates a detached document type node.
func (d *Document) CreateDoctype(name, publicID, systemID string) NodeID {
	return d.add(&Node{Type: DocumentTypeNode, Name: name, PublicID: publicID, SystemID: systemID})
}

// CreateFragment allocates a detached document fragment.
func (d *Document) CreateFragment() NodeID {
	return d.add(&Node{Type: DocumentFragmentNode})
}

// CloneElement returns a detached shallow copy of an element: same name,
// namespace and attributes, no children.
func (d *Document) CloneElement(id NodeID) NodeID {
	n := d.Node(id)
	attrs := make([]Attribute, len(n.Attr))
	copy(attrs, n.Attr)
	return d.CreateElement(n.Name, n.Namespace, attrs)
}

// Parent returns the parent of id, or Nil.
func (d *Document) Parent(id NodeID) NodeID {
	return d.Node(id).Parent
}

// Children returns the child list of id. The slice must not be modified.
func (d *Document) Children(id NodeID) []NodeID {
	return d.Node(id).Children
}

// LastChild returns the last child of id, or Nil.
func (d *Document) LastChild(id NodeID) NodeID {
	c := d.Node(id).Children
	if len(c) == 0 {
		return Nil
	}
	return c[len(c)-1]
}

// IndexOf returns the position of child among parent's children, or -1.
func (d *Document) IndexOf(parent, child NodeID) int {
	for i, c := range d.Node(parent).Children {
		if c == child {
			return i
		}
	}
	return -1
}

// PrevSibling returns the sibling immediately before id, or Nil.
func (d *Document) PrevSibling(id NodeID) NodeID {
	p := d.Node(id).Parent
	if p == Nil {
		return Nil
	}
	i := d.IndexOf(p, id)
	if i <= 0 {
		return Nil
	}
	return d.Node(p).Children[i-1]
}

// AppendChild attaches child as the last child of parent.
func (d *Document) AppendChild(parent, child NodeID) {
	d.InsertBefore(parent, child, Nil)
}

// InsertBefore attaches child to parent immediately before ref. A Nil ref
// appends. The child must be detached.
func (d *Document) InsertBefore(parent, child, ref NodeID) {
	c := d.Node(child)
	if c.Parent != Nil {
		panic(errors.Errorf("dom: node %d is already a child of %d", child, c.Parent))
	}
	p := d.Node(parent)
	i := len(p.Children)
	if ref != Nil {
		if i = d.IndexOf(parent, ref); i < 0 {
			panic(errors.Errorf("dom: node %d is not a child of %d", ref, parent))
		}
	}
	p.Children = append(p.Children, Nil)
	copy(p.Children[i+1:], p.Children[i:])
	p.Children[i] = child
	c.Parent = parent
}

// Detach removes id from its parent. It is a no-op for detached nodes.
func (d *Document) Detach(id NodeID) {
	n := d.Node(id)
	if n.Parent == Nil {
		return
	}
	p := d.Node(n.Parent)
	if i := d.IndexOf(n.Parent, id); i >= 0 {
		p.Children = append(p.Children[:i], p.Children[i+1:]...)
	}
	n.Parent = Nil
}

// ReparentChildren moves every child of src, in order, to the end of dst.
func (d *Document) ReparentChildren(dst, src NodeID) {
	s := d.Node(src)
	children := s.Children
	s.Children = nil
	for _, c := range children {
		d.Node(c).Parent = Nil
		d.AppendChild(dst, c)
	}
}

// InsertText inserts character data into parent before ref (Nil appends).
// The data merges into an adjacent preceding text node when there is one.
func (d *Document) InsertText(parent, ref NodeID, data string) {
	if data == "" {
		return
	}
	p := d.Node(parent)
	if p.Type == DocumentNode {
		return
	}
	i := len(p.Children)
	if ref != Nil {
		i = d.IndexOf(parent, ref)
	}
	if i > 0 {
		if prev := d.Node(p.Children[i-1]); prev.Type == TextNode {
			prev.Data += data
			return
		}
	}
	d.InsertBefore(parent, d.CreateText(data), ref)
}

// Walk calls fn for id and each of its descendants in tree order, descending
// into template contents. Returning false from fn skips the node's subtree.
func (d *Document) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	d.walk(id, 0, fn)
}

func (d *Document) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	if !fn(id, depth) {
		return
	}
	n := d.Node(id)
	if n.Template != Nil {
		d.walk(n.Template, depth+1, fn)
	}
	for _, c := range n.Children {
		d.walk(c, depth+1, fn)
	}
}
