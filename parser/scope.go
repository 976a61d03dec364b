package parser

import (
	"golang.org/x/net/html/atom"

	"github.com/gobrowse/engine/parser/dom"
)

type scope uint8

const (
	defaultScope scope = iota
	listItemScope
	buttonScope
	tableScope
	selectScope
)

// isDefaultScopeBoundary reports whether n ends a scope search in the
// default, list item and button scopes.
func isDefaultScopeBoundary(n *dom.Node) bool {
	switch n.Namespace {
	case dom.Htmlns:
		switch n.Atom {
		case atom.Applet, atom.Caption, atom.Html, atom.Table, atom.Td, atom.Th,
			atom.Marquee, atom.Object, atom.Template:
			return true
		}
	case dom.Mathmlns:
		switch n.Atom {
		case atom.Mi, atom.Mo, atom.Mn, atom.Ms, atom.Mtext, atom.AnnotationXml:
			return true
		}
	case dom.Svgns:
		switch n.Name {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

func isScopeBoundary(s scope, n *dom.Node) bool {
	switch s {
	case defaultScope:
		return isDefaultScopeBoundary(n)
	case listItemScope:
		return isDefaultScopeBoundary(n) || n.IsHTML(atom.Ol, atom.Ul)
	case buttonScope:
		return isDefaultScopeBoundary(n) || n.IsHTML(atom.Button)
	case tableScope:
		return n.IsHTML(atom.Html, atom.Table, atom.Template)
	case selectScope:
		return !n.IsHTML(atom.Optgroup, atom.Option)
	}
	panic(invariant("unknown scope %d", s))
}

// indexOfElementInScope returns the index in the stack of open elements of
// the top-most HTML element with one of the given tags, provided no scope
// boundary sits above it. It returns -1 otherwise.
func (c *HTMLTreeConstructor) indexOfElementInScope(s scope, tags ...atom.Atom) int {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		n := c.doc.Node(c.openElements[i])
		if n.IsHTML(tags...) {
			return i
		}
		if isScopeBoundary(s, n) {
			return -1
		}
	}
	return -1
}

// elementInScope reports whether an HTML element with one of tags is in
// the given scope.
func (c *HTMLTreeConstructor) elementInScope(s scope, tags ...atom.Atom) bool {
	return c.indexOfElementInScope(s, tags...) != -1
}

// nodeInScope reports whether the specific element id is in the default
// scope.
func (c *HTMLTreeConstructor) nodeInScope(id dom.NodeID) bool {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		if c.openElements[i] == id {
			return true
		}
		if isDefaultScopeBoundary(c.doc.Node(c.openElements[i])) {
			return false
		}
	}
	return false
}

// popUntil pops the stack of open elements up to and including the top-most
// element with one of tags in scope s. It reports whether such an element
// was found; the stack is unchanged if not.
func (c *HTMLTreeConstructor) popUntil(s scope, tags ...atom.Atom) bool {
	if i := c.indexOfElementInScope(s, tags...); i != -1 {
		c.openElements = c.openElements[:i]
		return true
	}
	return false
}

// popUntilHTML pops elements until an HTML element with one of tags has been
// popped, regardless of scope.
func (c *HTMLTreeConstructor) popUntilHTML(tags ...atom.Atom) {
	for len(c.openElements) > 0 {
		if c.doc.Node(c.openElements.pop()).IsHTML(tags...) {
			return
		}
	}
}

func impliesEndTag(n *dom.Node) bool {
	return n.IsHTML(atom.Dd, atom.Dt, atom.Li, atom.Optgroup, atom.Option, atom.P,
		atom.Rb, atom.Rp, atom.Rt, atom.Rtc)
}

// generateImpliedEndTags pops the current node while it is one of dd, dt,
// li, optgroup, option, p, rb, rp, rt or rtc. An element named in except is
// not popped.
func (c *HTMLTreeConstructor) generateImpliedEndTags(except ...atom.Atom) {
	for len(c.openElements) > 0 {
		n := c.currentNode()
		if !impliesEndTag(n) || n.IsHTML(except...) {
			return
		}
		c.openElements.pop()
	}
}

// generateAllImpliedEndTagsThoroughly extends the implied end tags with the
// table sections, rows and cells.
func (c *HTMLTreeConstructor) generateAllImpliedEndTagsThoroughly() {
	for len(c.openElements) > 0 {
		n := c.currentNode()
		if !impliesEndTag(n) && !n.IsHTML(atom.Caption, atom.Colgroup, atom.Tbody,
			atom.Td, atom.Tfoot, atom.Th, atom.Thead, atom.Tr) {
			return
		}
		c.openElements.pop()
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#close-a-p-element
func (c *HTMLTreeConstructor) closePElement(t *Token) {
	c.generateImpliedEndTags(atom.P)
	if !c.currentNode().IsHTML(atom.P) {
		c.parseError(UnexpectedEndTag, t)
	}
	c.popUntilHTML(atom.P)
}

// closePInButtonScope closes a p element if one is in button scope.
func (c *HTMLTreeConstructor) closePInButtonScope(t *Token) {
	if c.elementInScope(buttonScope, atom.P) {
		c.closePElement(t)
	}
}

// clearStackBackTo pops elements until the current node is an HTML element
// with one of tags.
func (c *HTMLTreeConstructor) clearStackBackTo(tags ...atom.Atom) {
	for len(c.openElements) > 0 && !c.currentNode().IsHTML(tags...) {
		c.openElements.pop()
	}
}

func (c *HTMLTreeConstructor) clearStackBackToTableContext() {
	c.clearStackBackTo(atom.Table, atom.Template, atom.Html)
}

func (c *HTMLTreeConstructor) clearStackBackToTableBodyContext() {
	c.clearStackBackTo(atom.Tbody, atom.Tfoot, atom.Thead, atom.Template, atom.Html)
}

func (c *HTMLTreeConstructor) clearStackBackToTableRowContext() {
	c.clearStackBackTo(atom.Tr, atom.Template, atom.Html)
}

// https://html.spec.whatwg.org/multipage/parsing.html#reset-the-insertion-mode-appropriately
func (c *HTMLTreeConstructor) resetInsertionMode() insertionMode {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		last := i == 0
		id := c.openElements[i]
		if last && c.context != dom.Nil {
			id = c.context
		}
		n := c.doc.Node(id)
		if n.Namespace != dom.Htmlns {
			if last {
				return inBody
			}
			continue
		}
		switch n.Atom {
		case atom.Select:
			if !last {
				for j := i - 1; j > 0; j-- {
					ancestor := c.doc.Node(c.openElements[j])
					if ancestor.IsHTML(atom.Template) {
						break
					}
					if ancestor.IsHTML(atom.Table) {
						return inSelectInTable
					}
				}
			}
			return inSelect
		case atom.Td, atom.Th:
			if !last {
				return inCell
			}
		case atom.Tr:
			return inRow
		case atom.Tbody, atom.Thead, atom.Tfoot:
			return inTableBody
		case atom.Caption:
			return inCaption
		case atom.Colgroup:
			return inColumnGroup
		case atom.Table:
			return inTable
		case atom.Template:
			return c.currentTemplateMode()
		case atom.Head:
			if !last {
				return inHead
			}
		case atom.Body:
			return inBody
		case atom.Frameset:
			return inFrameset
		case atom.Html:
			if c.headElement == dom.Nil {
				return beforeHead
			}
			return afterHead
		}
		if last {
			return inBody
		}
	}
	return inBody
}

// isSpecial reports whether n is in the special category of elements.
func isSpecial(n *dom.Node) bool {
	switch n.Namespace {
	case dom.Htmlns:
		switch n.Atom {
		case atom.Address, atom.Applet, atom.Area, atom.Article, atom.Aside, atom.Base,
			atom.Basefont, atom.Bgsound, atom.Blockquote, atom.Body, atom.Br, atom.Button,
			atom.Caption, atom.Center, atom.Col, atom.Colgroup, atom.Dd, atom.Details,
			atom.Dir, atom.Div, atom.Dl, atom.Dt, atom.Embed, atom.Fieldset,
			atom.Figcaption, atom.Figure, atom.Footer, atom.Form, atom.Frame,
			atom.Frameset, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
			atom.Head, atom.Header, atom.Hgroup, atom.Hr, atom.Html, atom.Iframe,
			atom.Img, atom.Input, atom.Keygen, atom.Li, atom.Link, atom.Listing,
			atom.Main, atom.Marquee, atom.Menu, atom.Meta, atom.Nav, atom.Noembed,
			atom.Noframes, atom.Noscript, atom.Object, atom.Ol, atom.P, atom.Param,
			atom.Plaintext, atom.Pre, atom.Script, atom.Section, atom.Select,
			atom.Source, atom.Style, atom.Summary, atom.Table, atom.Tbody, atom.Td,
			atom.Template, atom.Textarea, atom.Tfoot, atom.Th, atom.Thead, atom.Title,
			atom.Tr, atom.Track, atom.Ul, atom.Wbr, atom.Xmp:
			return true
		}
		return n.Name == "search"
	case dom.Mathmlns:
		switch n.Atom {
		case atom.Mi, atom.Mo, atom.Mn, atom.Ms, atom.Mtext, atom.AnnotationXml:
			return true
		}
	case dom.Svgns:
		switch n.Name {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}
