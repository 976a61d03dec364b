package parser

import (
	"golang.org/x/net/html/atom"

	"github.com/gobrowse/engine/parser/dom"
)

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselect
func (c *HTMLTreeConstructor) inSelectModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case CharacterToken:
		if t.Data == "\x00" {
			c.parseError(UnexpectedNullCharacter, t)
			return false, c.insertionMode
		}
		c.insertCharacter(t.Data)
		return false, c.insertionMode
	case CommentToken:
		c.insertComment(t, c.appropriatePlace(dom.Nil))
		return false, c.insertionMode
	case DoctypeToken:
		c.unexpected(t)
		return false, c.insertionMode
	case StartTagToken:
		switch t.Atom {
		case atom.Html:
			return c.useRulesFor(t, inBody)
		case atom.Option:
			if c.currentNode().IsHTML(atom.Option) {
				c.openElements.pop()
			}
			c.insertHTMLElement(t)
			return false, c.insertionMode
		case atom.Optgroup:
			if c.currentNode().IsHTML(atom.Option) {
				c.openElements.pop()
			}
			if c.currentNode().IsHTML(atom.Optgroup) {
				c.openElements.pop()
			}
			c.insertHTMLElement(t)
			return false, c.insertionMode
		case atom.Hr:
			if c.currentNode().IsHTML(atom.Option) {
				c.openElements.pop()
			}
			if c.currentNode().IsHTML(atom.Optgroup) {
				c.openElements.pop()
			}
			c.insertHTMLElement(t)
			c.openElements.pop()
			c.acknowledgeSelfClosingTag()
			return false, c.insertionMode
		case atom.Select:
			c.unexpected(t)
			if !c.popUntil(selectScope, atom.Select) {
				return false, c.insertionMode
			}
			return false, c.resetInsertionMode()
		case atom.Input, atom.Keygen, atom.Textarea:
			c.unexpected(t)
			if !c.popUntil(selectScope, atom.Select) {
				return false, c.insertionMode
			}
			return true, c.resetInsertionMode()
		case atom.Script, atom.Template:
			return c.useRulesFor(t, inHead)
		}
	case EndTagToken:
		switch t.Atom {
		case atom.Optgroup:
			if c.currentNode().IsHTML(atom.Option) && len(c.openElements) > 1 &&
				c.doc.Node(c.openElements[len(c.openElements)-2]).IsHTML(atom.Optgroup) {
				c.openElements.pop()
			}
			if !c.currentNode().IsHTML(atom.Optgroup) {
				c.unexpected(t)
				return false, c.insertionMode
			}
			c.openElements.pop()
			return false, c.insertionMode
		case atom.Option:
			if !c.currentNode().IsHTML(atom.Option) {
				c.unexpected(t)
				return false, c.insertionMode
			}
			c.openElements.pop()
			return false, c.insertionMode
		case atom.Select:
			if !c.popUntil(selectScope, atom.Select) {
				c.unexpected(t)
				return false, c.insertionMode
			}
			return false, c.resetInsertionMode()
		case atom.Template:
			return c.useRulesFor(t, inHead)
		}
	case EndOfFileToken:
		return c.useRulesFor(t, inBody)
	}

	c.unexpected(t)
	return false, c.insertionMode
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselectintable
func (c *HTMLTreeConstructor) inSelectInTableModeHandler(t *Token) (bool, insertionMode) {
	tableTags := []atom.Atom{atom.Caption, atom.Table, atom.Tbody, atom.Tfoot, atom.Thead,
		atom.Tr, atom.Td, atom.Th}
	switch {
	case isStartTag(t, tableTags...):
		c.unexpected(t)
		c.popUntilHTML(atom.Select)
		return true, c.resetInsertionMode()
	case isEndTag(t, tableTags...):
		c.unexpected(t)
		if !c.elementInScope(tableScope, t.Atom) {
			return false, c.insertionMode
		}
		c.popUntilHTML(atom.Select)
		return true, c.resetInsertionMode()
	}
	return c.useRulesFor(t, inSelect)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intemplate
func (c *HTMLTreeConstructor) inTemplateModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case CharacterToken, CommentToken, DoctypeToken:
		return c.useRulesFor(t, inBody)
	case StartTagToken:
		var mode insertionMode
		switch t.Atom {
		case atom.Base, atom.Basefont, atom.Bgsound, atom.Link, atom.Meta, atom.Noframes,
			atom.Script, atom.Style, atom.Template, atom.Title:
			return c.useRulesFor(t, inHead)
		case atom.Caption, atom.Colgroup, atom.Tbody, atom.Tfoot, atom.Thead:
			mode = inTable
		case atom.Col:
			mode = inColumnGroup
		case atom.Tr:
			mode = inTableBody
		case atom.Td, atom.Th:
			mode = inRow
		default:
			mode = inBody
		}
		c.popTemplateMode()
		c.pushTemplateMode(mode)
		return true, mode
	case EndTagToken:
		if t.Atom == atom.Template {
			return c.useRulesFor(t, inHead)
		}
		c.unexpected(t)
		return false, c.insertionMode
	case EndOfFileToken:
		if !c.hasTemplateOnStack() {
			return false, c.insertionMode
		}
		c.unexpected(t)
		c.popUntilHTML(atom.Template)
		c.activeFormatting.clearToLastMarker()
		c.popTemplateMode()
		return true, c.resetInsertionMode()
	}
	return false, c.insertionMode
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterbody
func (c *HTMLTreeConstructor) afterBodyModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case isWhitespace(t), isStartTag(t, atom.Html):
		return c.useRulesFor(t, inBody)
	case t.TokenType == CommentToken:
		c.insertCommentLast(t, c.openElements[0])
		return false, c.insertionMode
	case t.TokenType == DoctypeToken:
		c.unexpected(t)
		return false, c.insertionMode
	case isEndTag(t, atom.Html):
		if c.context != dom.Nil {
			c.unexpected(t)
			return false, c.insertionMode
		}
		return false, afterAfterBody
	case t.TokenType == EndOfFileToken:
		return false, c.insertionMode
	}
	c.unexpected(t)
	return true, inBody
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inframeset
func (c *HTMLTreeConstructor) inFramesetModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case isWhitespace(t):
		c.insertCharacter(t.Data)
		return false, c.insertionMode
	case t.TokenType == CommentToken:
		c.insertComment(t, c.appropriatePlace(dom.Nil))
		return false, c.insertionMode
	case isStartTag(t, atom.Html):
		return c.useRulesFor(t, inBody)
	case isStartTag(t, atom.Frameset):
		c.insertHTMLElement(t)
		return false, c.insertionMode
	case isEndTag(t, atom.Frameset):
		if len(c.openElements) == 1 {
			c.unexpected(t)
			return false, c.insertionMode
		}
		c.openElements.pop()
		if c.context == dom.Nil && !c.currentNode().IsHTML(atom.Frameset) {
			return false, afterFrameset
		}
		return false, c.insertionMode
	case isStartTag(t, atom.Frame):
		c.insertHTMLElement(t)
		c.openElements.pop()
		c.acknowledgeSelfClosingTag()
		return false, c.insertionMode
	case isStartTag(t, atom.Noframes):
		return c.useRulesFor(t, inHead)
	case t.TokenType == EndOfFileToken:
		if len(c.openElements) > 1 {
			c.parseError(EOFWithOpenElements, t)
		}
		return false, c.insertionMode
	}
	c.unexpected(t)
	return false, c.insertionMode
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterframeset
func (c *HTMLTreeConstructor) afterFramesetModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case isWhitespace(t):
		c.insertCharacter(t.Data)
		return false, c.insertionMode
	case t.TokenType == CommentToken:
		c.insertComment(t, c.appropriatePlace(dom.Nil))
		return false, c.insertionMode
	case isStartTag(t, atom.Html):
		return c.useRulesFor(t, inBody)
	case isEndTag(t, atom.Html):
		return false, afterAfterFrameset
	case isStartTag(t, atom.Noframes):
		return c.useRulesFor(t, inHead)
	case t.TokenType == EndOfFileToken:
		return false, c.insertionMode
	}
	c.unexpected(t)
	return false, c.insertionMode
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-body-insertion-mode
func (c *HTMLTreeConstructor) afterAfterBodyModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.TokenType == CommentToken:
		c.insertCommentLast(t, c.doc.Root())
		return false, c.insertionMode
	case t.TokenType == DoctypeToken, isWhitespace(t), isStartTag(t, atom.Html):
		return c.useRulesFor(t, inBody)
	case t.TokenType == EndOfFileToken:
		return false, c.insertionMode
	}
	c.unexpected(t)
	return true, inBody
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-frameset-insertion-mode
func (c *HTMLTreeConstructor) afterAfterFramesetModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.TokenType == CommentToken:
		c.insertCommentLast(t, c.doc.Root())
		return false, c.insertionMode
	case t.TokenType == DoctypeToken, isWhitespace(t), isStartTag(t, atom.Html):
		return c.useRulesFor(t, inBody)
	case isStartTag(t, atom.Noframes):
		return c.useRulesFor(t, inHead)
	case t.TokenType == EndOfFileToken:
		return false, c.insertionMode
	}
	c.unexpected(t)
	return false, c.insertionMode
}
