package parser

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/gobrowse/engine/parser/dom"
)

// mayRemainOpen reports whether an element left open at the end of the body
// goes unreported.
func mayRemainOpen(n *dom.Node) bool {
	return n.IsHTML(atom.Dd, atom.Dt, atom.Li, atom.Optgroup, atom.Option, atom.P,
		atom.Rb, atom.Rp, atom.Rt, atom.Rtc, atom.Tbody, atom.Td, atom.Tfoot, atom.Th,
		atom.Thead, atom.Tr, atom.Body, atom.Html)
}

// reportOpenElements raises a single error when an element other than the
// ones that close implicitly is still open.
func (c *HTMLTreeConstructor) reportOpenElements(t *Token) {
	for _, id := range c.openElements {
		if !mayRemainOpen(c.doc.Node(id)) {
			c.parseError(EOFWithOpenElements, t)
			return
		}
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
func (c *HTMLTreeConstructor) inBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case CharacterToken:
		switch {
		case t.Data == "\x00":
			c.parseError(UnexpectedNullCharacter, t)
		case isWhitespace(t):
			c.reconstructActiveFormattingElements()
			c.insertCharacter(t.Data)
		default:
			c.reconstructActiveFormattingElements()
			c.insertCharacter(t.Data)
			c.framesetOK = false
		}
		return false, c.insertionMode
	case CommentToken:
		c.insertComment(t, c.appropriatePlace(dom.Nil))
		return false, c.insertionMode
	case DoctypeToken:
		c.unexpected(t)
		return false, c.insertionMode
	case StartTagToken:
		return c.inBodyStartTag(t)
	case EndTagToken:
		return c.inBodyEndTag(t)
	case EndOfFileToken:
		if len(c.templateInsertionModes) > 0 {
			return c.useRulesFor(t, inTemplate)
		}
		c.reportOpenElements(t)
		return false, c.insertionMode
	}
	return false, c.insertionMode
}

func (c *HTMLTreeConstructor) inBodyStartTag(t *Token) (bool, insertionMode) {
	switch t.Atom {
	case atom.Html:
		c.unexpected(t)
		if !c.hasTemplateOnStack() {
			c.addMissingAttributes(c.openElements[0], t)
		}
	case atom.Base, atom.Basefont, atom.Bgsound, atom.Link, atom.Meta, atom.Noframes,
		atom.Script, atom.Style, atom.Template, atom.Title:
		return c.useRulesFor(t, inHead)
	case atom.Body:
		c.unexpected(t)
		if len(c.openElements) < 2 || !c.doc.Node(c.openElements[1]).IsHTML(atom.Body) || c.hasTemplateOnStack() {
			break
		}
		c.framesetOK = false
		c.addMissingAttributes(c.openElements[1], t)
	case atom.Frameset:
		c.unexpected(t)
		if len(c.openElements) < 2 || !c.doc.Node(c.openElements[1]).IsHTML(atom.Body) || !c.framesetOK {
			break
		}
		c.doc.Detach(c.openElements[1])
		c.openElements = c.openElements[:1]
		c.insertHTMLElement(t)
		return false, inFrameset
	case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Center,
		atom.Details, atom.Dialog, atom.Dir, atom.Div, atom.Dl, atom.Fieldset,
		atom.Figcaption, atom.Figure, atom.Footer, atom.Header, atom.Hgroup,
		atom.Main, atom.Menu, atom.Nav, atom.Ol, atom.P, atom.Section,
		atom.Summary, atom.Ul:
		c.closePInButtonScope(t)
		c.insertHTMLElement(t)
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		c.closePInButtonScope(t)
		if c.currentNode().IsHTML(atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6) {
			c.unexpected(t)
			c.openElements.pop()
		}
		c.insertHTMLElement(t)
	case atom.Pre, atom.Listing:
		c.closePInButtonScope(t)
		c.insertHTMLElement(t)
		c.skipNewline = true
		c.framesetOK = false
	case atom.Form:
		templated := c.hasTemplateOnStack()
		if c.formElement != dom.Nil && !templated {
			c.unexpected(t)
			break
		}
		c.closePInButtonScope(t)
		id := c.insertHTMLElement(t)
		if !templated {
			c.formElement = id
		}
	case atom.Li:
		c.framesetOK = false
		c.closeListItem(t, atom.Li)
		c.closePInButtonScope(t)
		c.insertHTMLElement(t)
	case atom.Dd, atom.Dt:
		c.framesetOK = false
		c.closeListItem(t, atom.Dd, atom.Dt)
		c.closePInButtonScope(t)
		c.insertHTMLElement(t)
	case atom.Plaintext:
		c.closePInButtonScope(t)
		c.insertHTMLElement(t)
		c.switchTokenizerTo(plaintextState)
	case atom.Button:
		if c.elementInScope(defaultScope, atom.Button) {
			c.unexpected(t)
			c.generateImpliedEndTags()
			c.popUntilHTML(atom.Button)
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.framesetOK = false
	case atom.A:
		if a := c.lastBeforeMarker(atom.A, "a"); a != dom.Nil {
			c.parseError(MisnestedFormattingElement, t)
			c.adoptionAgency(t)
			c.activeFormatting.remove(a)
			c.openElements.remove(a)
		}
		c.reconstructActiveFormattingElements()
		c.pushActiveFormattingElement(c.insertHTMLElement(t))
	case atom.B, atom.Big, atom.Code, atom.Em, atom.Font, atom.I, atom.S, atom.Small,
		atom.Strike, atom.Strong, atom.Tt, atom.U:
		c.reconstructActiveFormattingElements()
		c.pushActiveFormattingElement(c.insertHTMLElement(t))
	case atom.Nobr:
		c.reconstructActiveFormattingElements()
		if c.elementInScope(defaultScope, atom.Nobr) {
			c.parseError(MisnestedFormattingElement, t)
			c.adoptionAgency(t)
			c.reconstructActiveFormattingElements()
		}
		c.pushActiveFormattingElement(c.insertHTMLElement(t))
	case atom.Applet, atom.Marquee, atom.Object:
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.activeFormatting.insertMarker()
		c.framesetOK = false
	case atom.Table:
		if c.doc.Mode != dom.Quirks {
			c.closePInButtonScope(t)
		}
		c.insertHTMLElement(t)
		c.framesetOK = false
		return false, inTable
	case atom.Area, atom.Br, atom.Embed, atom.Img, atom.Keygen, atom.Wbr:
		c.insertVoidElement(t)
		c.framesetOK = false
	case atom.Input:
		c.insertVoidElement(t)
		if !isHiddenInput(t) {
			c.framesetOK = false
		}
	case atom.Param, atom.Source, atom.Track:
		c.insertHTMLElement(t)
		c.openElements.pop()
		c.acknowledgeSelfClosingTag()
	case atom.Hr:
		c.closePInButtonScope(t)
		c.insertHTMLElement(t)
		c.openElements.pop()
		c.acknowledgeSelfClosingTag()
		c.framesetOK = false
	case atom.Image:
		c.unexpected(t)
		t.TagName, t.Atom = "img", atom.Img
		return true, c.insertionMode
	case atom.Textarea:
		c.insertHTMLElement(t)
		c.skipNewline = true
		c.switchTokenizerTo(rcDataState)
		c.originalInsertionMode = c.insertionMode
		c.framesetOK = false
		return false, text
	case atom.Xmp:
		c.closePInButtonScope(t)
		c.reconstructActiveFormattingElements()
		c.framesetOK = false
		return false, c.parseGenericText(t, rawTextState)
	case atom.Iframe:
		c.framesetOK = false
		return false, c.parseGenericText(t, rawTextState)
	case atom.Noembed:
		return false, c.parseGenericText(t, rawTextState)
	case atom.Noscript:
		if c.cfg.ScriptingEnabled {
			return false, c.parseGenericText(t, rawTextState)
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
	case atom.Select:
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
		c.framesetOK = false
		switch c.insertionMode {
		case inTable, inCaption, inTableBody, inRow, inCell:
			return false, inSelectInTable
		}
		return false, inSelect
	case atom.Optgroup, atom.Option:
		if c.currentNode().IsHTML(atom.Option) {
			c.openElements.pop()
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElement(t)
	case atom.Rb, atom.Rtc:
		if c.elementInScope(defaultScope, atom.Ruby) {
			c.generateImpliedEndTags()
			if !c.currentNode().IsHTML(atom.Ruby) {
				c.unexpected(t)
			}
		}
		c.insertHTMLElement(t)
	case atom.Rp, atom.Rt:
		if c.elementInScope(defaultScope, atom.Ruby) {
			c.generateImpliedEndTags(atom.Rtc)
			if !c.currentNode().IsHTML(atom.Rtc, atom.Ruby) {
				c.unexpected(t)
			}
		}
		c.insertHTMLElement(t)
	case atom.Math:
		c.insertForeignRoot(t, dom.Mathmlns)
	case atom.Svg:
		c.insertForeignRoot(t, dom.Svgns)
	case atom.Caption, atom.Col, atom.Colgroup, atom.Frame, atom.Head, atom.Tbody,
		atom.Td, atom.Tfoot, atom.Th, atom.Thead, atom.Tr:
		c.unexpected(t)
	default:
		if t.TagName == "search" {
			c.closePInButtonScope(t)
		} else {
			c.reconstructActiveFormattingElements()
		}
		c.insertHTMLElement(t)
	}
	return false, c.insertionMode
}

// closeListItem implements the loop shared by the li, dd and dt start tags:
// an open item of the same family is closed unless a special element other
// than address, div or p sits above it.
func (c *HTMLTreeConstructor) closeListItem(t *Token, family ...atom.Atom) {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		n := c.doc.Node(c.openElements[i])
		if n.IsHTML(family...) {
			c.generateImpliedEndTags(n.Atom)
			if !c.currentNode().IsHTML(n.Atom) {
				c.unexpected(t)
			}
			c.popUntilHTML(n.Atom)
			return
		}
		if isSpecial(n) && !n.IsHTML(atom.Address, atom.Div, atom.P) {
			return
		}
	}
}

func (c *HTMLTreeConstructor) insertVoidElement(t *Token) {
	c.reconstructActiveFormattingElements()
	c.insertHTMLElement(t)
	c.openElements.pop()
	c.acknowledgeSelfClosingTag()
}

func isHiddenInput(t *Token) bool {
	v, ok := t.Attr("type")
	return ok && strings.EqualFold(v, "hidden")
}

// insertForeignRoot inserts a math or svg element opened from HTML content.
func (c *HTMLTreeConstructor) insertForeignRoot(t *Token, ns dom.Namespace) {
	c.reconstructActiveFormattingElements()
	c.insertForeignElement(t, ns)
	if t.SelfClosing {
		c.openElements.pop()
		c.acknowledgeSelfClosingTag()
	}
}

func (c *HTMLTreeConstructor) inBodyEndTag(t *Token) (bool, insertionMode) {
	switch t.Atom {
	case atom.Template:
		return c.useRulesFor(t, inHead)
	case atom.Body:
		if !c.elementInScope(defaultScope, atom.Body) {
			c.unexpected(t)
			break
		}
		c.reportOpenElements(t)
		return false, afterBody
	case atom.Html:
		if !c.elementInScope(defaultScope, atom.Body) {
			c.unexpected(t)
			break
		}
		c.reportOpenElements(t)
		return true, afterBody
	case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Button,
		atom.Center, atom.Details, atom.Dialog, atom.Dir, atom.Div, atom.Dl,
		atom.Fieldset, atom.Figcaption, atom.Figure, atom.Footer, atom.Header,
		atom.Hgroup, atom.Listing, atom.Main, atom.Menu, atom.Nav, atom.Ol, atom.Pre,
		atom.Section, atom.Summary, atom.Ul:
		c.closeBlock(t)
	case atom.Form:
		if c.hasTemplateOnStack() {
			if !c.elementInScope(defaultScope, atom.Form) {
				c.unexpected(t)
				break
			}
			c.generateImpliedEndTags()
			if !c.currentNode().IsHTML(atom.Form) {
				c.unexpected(t)
			}
			c.popUntilHTML(atom.Form)
			break
		}
		form := c.formElement
		c.formElement = dom.Nil
		if form == dom.Nil || !c.nodeInScope(form) {
			c.unexpected(t)
			break
		}
		c.generateImpliedEndTags()
		if c.openElements.top() != form {
			c.unexpected(t)
		}
		c.openElements.remove(form)
	case atom.P:
		if !c.elementInScope(buttonScope, atom.P) {
			c.unexpected(t)
			c.insertHTMLElement(impliedTag(atom.P, t))
		}
		c.closePElement(t)
	case atom.Li:
		if !c.elementInScope(listItemScope, atom.Li) {
			c.unexpected(t)
			break
		}
		c.generateImpliedEndTags(atom.Li)
		if !c.currentNode().IsHTML(atom.Li) {
			c.unexpected(t)
		}
		c.popUntilHTML(atom.Li)
	case atom.Dd, atom.Dt:
		if !c.elementInScope(defaultScope, t.Atom) {
			c.unexpected(t)
			break
		}
		c.generateImpliedEndTags(t.Atom)
		if !c.currentNode().IsHTML(t.Atom) {
			c.unexpected(t)
		}
		c.popUntilHTML(t.Atom)
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		headings := []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}
		if !c.elementInScope(defaultScope, headings...) {
			c.unexpected(t)
			break
		}
		c.generateImpliedEndTags()
		if !c.currentNode().IsHTML(t.Atom) {
			c.unexpected(t)
		}
		c.popUntilHTML(headings...)
	case atom.A, atom.B, atom.Big, atom.Code, atom.Em, atom.Font, atom.I, atom.Nobr,
		atom.S, atom.Small, atom.Strike, atom.Strong, atom.Tt, atom.U:
		c.adoptionAgency(t)
	case atom.Applet, atom.Marquee, atom.Object:
		if !c.elementInScope(defaultScope, t.Atom) {
			c.unexpected(t)
			break
		}
		c.generateImpliedEndTags()
		if !c.currentNode().IsHTML(t.Atom) {
			c.unexpected(t)
		}
		c.popUntilHTML(t.Atom)
		c.activeFormatting.clearToLastMarker()
	case atom.Br:
		c.unexpected(t)
		c.insertVoidElement(impliedTag(atom.Br, t))
		c.framesetOK = false
	default:
		if t.TagName == "search" {
			c.closeBlock(t)
			break
		}
		c.inBodyEndTagOther(t)
	}
	return false, c.insertionMode
}

// closeBlock closes the block element named by the end tag t.
func (c *HTMLTreeConstructor) closeBlock(t *Token) {
	i := c.indexOfNamedInScope(t.TagName)
	if i == -1 {
		c.unexpected(t)
		return
	}
	c.generateImpliedEndTags()
	if c.currentNode().Name != t.TagName {
		c.unexpected(t)
	}
	c.openElements = c.openElements[:i]
}

// indexOfNamedInScope is indexOfElementInScope for HTML elements matched by
// name, which also covers elements without an atom.
func (c *HTMLTreeConstructor) indexOfNamedInScope(name string) int {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		n := c.doc.Node(c.openElements[i])
		if n.Namespace == dom.Htmlns && n.Name == name {
			return i
		}
		if isDefaultScopeBoundary(n) {
			return -1
		}
	}
	return -1
}

// inBodyEndTagOther performs the "any other end tag" steps of the in body
// insertion mode.
func (c *HTMLTreeConstructor) inBodyEndTagOther(t *Token) {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		id := c.openElements[i]
		n := c.doc.Node(id)
		if n.Type == dom.ElementNode && n.Namespace == dom.Htmlns && n.Name == t.TagName {
			c.generateImpliedEndTagsExceptNamed(t.TagName)
			if c.openElements.top() != id {
				c.unexpected(t)
			}
			c.openElements = c.openElements[:i]
			return
		}
		if isSpecial(n) {
			c.unexpected(t)
			return
		}
	}
}

// generateImpliedEndTagsExceptNamed is generateImpliedEndTags with the
// exception given by name.
func (c *HTMLTreeConstructor) generateImpliedEndTagsExceptNamed(name string) {
	for len(c.openElements) > 0 {
		n := c.currentNode()
		if !impliesEndTag(n) || n.Name == name {
			return
		}
		c.openElements.pop()
	}
}
