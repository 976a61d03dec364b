package parser

import (
	"golang.org/x/net/html/atom"

	"github.com/gobrowse/engine/parser/dom"
)

// elementStack is the stack of open elements. The bottom of the stack is at
// index 0 and is the html element once one has been inserted.
type elementStack []dom.NodeID

func (s *elementStack) push(id dom.NodeID) {
	*s = append(*s, id)
}

// pop removes and returns the current node. Popping an empty stack is a
// defect in the caller.
func (s *elementStack) pop() dom.NodeID {
	i := len(*s)
	if i == 0 {
		panic(invariant("pop from an empty stack of open elements"))
	}
	id := (*s)[i-1]
	*s = (*s)[:i-1]
	return id
}

// top returns the current node, or dom.Nil.
func (s elementStack) top() dom.NodeID {
	if i := len(s); i > 0 {
		return s[i-1]
	}
	return dom.Nil
}

// index returns the index of the top-most occurrence of id, or -1.
func (s elementStack) index(id dom.NodeID) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == id {
			return i
		}
	}
	return -1
}

func (s elementStack) contains(id dom.NodeID) bool {
	return s.index(id) != -1
}

func (s *elementStack) insert(i int, id dom.NodeID) {
	*s = append(*s, dom.Nil)
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = id
}

// remove drops id from the stack. It is a no-op if id is not present.
func (s *elementStack) remove(id dom.NodeID) {
	i := s.index(id)
	if i == -1 {
		return
	}
	*s = append((*s)[:i], (*s)[i+1:]...)
}

// scopeMarker separates the active formatting elements of nested
// applet, object, marquee, template, td, th and caption elements.
const scopeMarker = dom.Nil

// formattingList is the list of active formatting elements. Entries are
// element handles or scopeMarker.
type formattingList []dom.NodeID

func (l *formattingList) push(id dom.NodeID) {
	*l = append(*l, id)
}

func (l *formattingList) insertMarker() {
	*l = append(*l, scopeMarker)
}

func (l formattingList) top() (dom.NodeID, bool) {
	if i := len(l); i > 0 {
		return l[i-1], true
	}
	return dom.Nil, false
}

// index returns the index of id in the list, or -1. Markers are never found.
func (l formattingList) index(id dom.NodeID) int {
	if id == scopeMarker {
		return -1
	}
	for i := len(l) - 1; i >= 0; i-- {
		if l[i] == id {
			return i
		}
	}
	return -1
}

func (l *formattingList) insert(i int, id dom.NodeID) {
	*l = append(*l, scopeMarker)
	copy((*l)[i+1:], (*l)[i:])
	(*l)[i] = id
}

func (l *formattingList) remove(id dom.NodeID) {
	i := l.index(id)
	if i == -1 {
		return
	}
	*l = append((*l)[:i], (*l)[i+1:]...)
}

// clearToLastMarker removes entries up to and including the last marker.
func (l *formattingList) clearToLastMarker() {
	for len(*l) > 0 {
		i := len(*l) - 1
		id := (*l)[i]
		*l = (*l)[:i]
		if id == scopeMarker {
			return
		}
	}
}

// lastBeforeMarker returns the last element with the given HTML tag that
// appears after the last marker, or dom.Nil.
func (c *HTMLTreeConstructor) lastBeforeMarker(a atom.Atom, name string) dom.NodeID {
	for i := len(c.activeFormatting) - 1; i >= 0; i-- {
		id := c.activeFormatting[i]
		if id == scopeMarker {
			break
		}
		n := c.doc.Node(id)
		if n.Namespace == dom.Htmlns && n.Atom == a && n.Name == name {
			return id
		}
	}
	return dom.Nil
}

// pushActiveFormattingElement appends id to the list of active formatting
// elements, first applying the Noah's Ark clause: when three elements with
// the same tag, namespace and attributes already follow the last marker,
// the earliest of them is removed.
func (c *HTMLTreeConstructor) pushActiveFormattingElement(id dom.NodeID) {
	n := c.doc.Node(id)
	identical := 0
	earliest := -1
	for i := len(c.activeFormatting) - 1; i >= 0; i-- {
		e := c.activeFormatting[i]
		if e == scopeMarker {
			break
		}
		if sameElement(n, c.doc.Node(e)) {
			identical++
			earliest = i
		}
	}
	if identical >= 3 {
		c.activeFormatting = append(c.activeFormatting[:earliest], c.activeFormatting[earliest+1:]...)
	}
	c.activeFormatting.push(id)
}

// sameElement compares tag, namespace and the attribute set, ignoring
// attribute order.
func sameElement(x, y *dom.Node) bool {
	if x.Name != y.Name || x.Namespace != y.Namespace || len(x.Attr) != len(y.Attr) {
		return false
	}
compare:
	for _, ax := range x.Attr {
		for _, ay := range y.Attr {
			if ax == ay {
				continue compare
			}
		}
		return false
	}
	return true
}

// https://html.spec.whatwg.org/multipage/parsing.html#reconstruct-the-active-formatting-elements
func (c *HTMLTreeConstructor) reconstructActiveFormattingElements() {
	last, ok := c.activeFormatting.top()
	if !ok || last == scopeMarker || c.openElements.contains(last) {
		return
	}
	i := len(c.activeFormatting) - 1
	for i > 0 {
		prev := c.activeFormatting[i-1]
		if prev == scopeMarker || c.openElements.contains(prev) {
			break
		}
		i--
	}
	for ; i < len(c.activeFormatting); i++ {
		clone := c.doc.CloneElement(c.activeFormatting[i])
		c.insertNode(clone)
		c.openElements.push(clone)
		c.activeFormatting[i] = clone
	}
}
